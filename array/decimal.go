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
	"github.com/quiverdata/quiver/decimal128"
)

// Decimal128 is an array of 128-bit decimal values. Precision and scale
// come from the array's Decimal128Type.
type Decimal128 struct {
	array
	values []decimal128.Num
}

func newDecimal128Data(d *Data) *Decimal128 {
	a := &Decimal128{}
	a.setData(d)
	if len(d.buffers) > 1 && d.buffers[1] != nil {
		a.values = castBytes[decimal128.Num](d.buffers[1].Bytes())
	}
	return a
}

func (a *Decimal128) Value(i int) decimal128.Num { return a.values[a.data.offset+i] }

func (a *Decimal128) Values() []decimal128.Num {
	return a.values[a.data.offset : a.data.offset+a.data.length]
}

func (a *Decimal128) String() string {
	return stringify(a, func(i int) string { return a.Value(i).String() })
}
