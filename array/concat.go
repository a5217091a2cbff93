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
	"fmt"

	"github.com/quiverdata/quiver"
)

// Concatenate copies the values of arrs, in order, into one new array.
// All inputs must share one data type. This is the only array operation
// that copies values; use chunked arrays to compose without copying.
func Concatenate(arrs []Array) (Array, error) {
	if len(arrs) == 0 {
		return nil, fmt.Errorf("%w: concatenate requires at least one array", quiver.ErrInvalid)
	}
	dt := arrs[0].DataType()
	for _, a := range arrs[1:] {
		if !quiver.TypeEqual(dt, a.DataType()) {
			return nil, fmt.Errorf("%w: concatenating %s with %s",
				quiver.ErrTypeMismatch, dt, a.DataType())
		}
	}
	bldr, err := NewBuilder(dt)
	if err != nil {
		return nil, err
	}
	for _, a := range arrs {
		for i := 0; i < a.Len(); i++ {
			if err := AppendElement(bldr, a, i); err != nil {
				return nil, err
			}
		}
	}
	return bldr.NewArray(), nil
}
