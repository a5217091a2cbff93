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

package array

import (
	"strconv"

	"github.com/quiverdata/quiver/internal/bitutil"
)

// Boolean is an array of bit-packed boolean values.
type Boolean struct {
	array
	values []byte
}

func newBooleanData(d *Data) *Boolean {
	a := &Boolean{}
	a.setData(d)
	if len(d.buffers) > 1 && d.buffers[1] != nil {
		a.values = d.buffers[1].Bytes()
	}
	return a
}

func (a *Boolean) Value(i int) bool {
	return bitutil.BitIsSet(a.values, a.data.offset+i)
}

func (a *Boolean) String() string {
	return stringify(a, func(i int) string { return strconv.FormatBool(a.Value(i)) })
}
