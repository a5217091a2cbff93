// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decimal128_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quiverdata/quiver/decimal128"
)

func TestFromI64(t *testing.T) {
	n := decimal128.FromI64(-5)
	assert.Equal(t, int64(-1), n.HighBits())
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFB), n.LowBits())
	assert.Equal(t, -1, n.Sign())
	assert.Equal(t, "-5", n.String())

	p := decimal128.FromU64(42)
	assert.Equal(t, int64(0), p.HighBits())
	assert.Equal(t, 1, p.Sign())
	assert.Equal(t, "42", p.String())
}

func TestBigInt(t *testing.T) {
	n := decimal128.New(1, 0) // 2^64
	assert.Equal(t, "18446744073709551616", n.BigInt().String())
}
