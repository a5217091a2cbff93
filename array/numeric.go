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
	"unsafe"

	"golang.org/x/exp/constraints"
)

// numericValue constrains the Go storage types of fixed-width arrays.
type numericValue interface {
	constraints.Integer | constraints.Float
}

// castBytes reinterprets a byte buffer as a slice of T without copying.
// The buffers involved are immutable, so aliasing is safe.
func castBytes[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/sz)
}

// castToBytes reinterprets a slice of T as bytes without copying.
func castToBytes[T any](vs []T) []byte {
	if len(vs) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&vs[0])), len(vs)*sz)
}

// Numeric is a fixed-width array with Go storage type T.
type Numeric[T numericValue] struct {
	array
	values []T
}

func newNumericData[T numericValue](d *Data) *Numeric[T] {
	a := &Numeric[T]{}
	a.setData(d)
	if len(d.buffers) > 1 && d.buffers[1] != nil {
		a.values = castBytes[T](d.buffers[1].Bytes())
	}
	return a
}

// Value returns the element at index i; the result is unspecified when
// IsNull(i).
func (a *Numeric[T]) Value(i int) T { return a.values[a.data.offset+i] }

// Values returns the logical value slice as a read-only view.
func (a *Numeric[T]) Values() []T {
	return a.values[a.data.offset : a.data.offset+a.data.length]
}

func (a *Numeric[T]) String() string {
	return stringify(a, func(i int) string { return fmt.Sprintf("%v", a.Value(i)) })
}
