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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quiverdata/quiver/memory"
)

func TestNewBufferBytesShares(t *testing.T) {
	data := []byte{1, 2, 3}
	buf := memory.NewBufferBytes(data)
	assert.Equal(t, 3, buf.Len())
	data[0] = 9
	assert.Equal(t, byte(9), buf.Bytes()[0])
}

func TestNewBufferCopyDetaches(t *testing.T) {
	data := []byte{1, 2, 3}
	buf := memory.NewBufferCopy(data)
	data[0] = 9
	assert.Equal(t, byte(1), buf.Bytes()[0])
}

func TestNilBuffer(t *testing.T) {
	var buf *memory.Buffer
	assert.Equal(t, 0, buf.Len())
	assert.Nil(t, buf.Bytes())
}
