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

// Binary is an array of variable-length byte values, stored as int32
// offsets into a shared values buffer.
type Binary struct {
	array
	offsets    []int32
	valueBytes []byte
}

func newBinaryData(d *Data) *Binary {
	a := &Binary{}
	a.setData(d)
	if len(d.buffers) > 1 && d.buffers[1] != nil {
		a.offsets = castBytes[int32](d.buffers[1].Bytes())
	}
	if len(d.buffers) > 2 && d.buffers[2] != nil {
		a.valueBytes = d.buffers[2].Bytes()
	}
	return a
}

// Value returns the bytes at index i; callers must not mutate the result.
func (a *Binary) Value(i int) []byte {
	o := a.data.offset
	return a.valueBytes[a.offsets[o+i]:a.offsets[o+i+1]]
}

func (a *Binary) ValueString(i int) string { return string(a.Value(i)) }

func (a *Binary) String() string {
	return stringify(a, func(i int) string { return fmt.Sprintf("%q", a.Value(i)) })
}

// String is an array of variable-length UTF-8 strings. The layout is the
// same as Binary.
type String struct {
	array
	offsets    []int32
	valueBytes []byte
}

func newStringData(d *Data) *String {
	a := &String{}
	a.setData(d)
	if len(d.buffers) > 1 && d.buffers[1] != nil {
		a.offsets = castBytes[int32](d.buffers[1].Bytes())
	}
	if len(d.buffers) > 2 && d.buffers[2] != nil {
		a.valueBytes = d.buffers[2].Bytes()
	}
	return a
}

func (a *String) Value(i int) string {
	o := a.data.offset
	return string(a.valueBytes[a.offsets[o+i]:a.offsets[o+i+1]])
}

func (a *String) String() string {
	return stringify(a, func(i int) string { return fmt.Sprintf("%q", a.Value(i)) })
}

// FixedSizeBinary is an array of byte values that all share one width.
type FixedSizeBinary struct {
	array
	valueBytes []byte
	width      int
}

func newFixedSizeBinaryData(d *Data) *FixedSizeBinary {
	a := &FixedSizeBinary{width: d.dtype.(*quiver.FixedSizeBinaryType).ByteWidth}
	a.setData(d)
	if len(d.buffers) > 1 && d.buffers[1] != nil {
		a.valueBytes = d.buffers[1].Bytes()
	}
	return a
}

func (a *FixedSizeBinary) Value(i int) []byte {
	start := (a.data.offset + i) * a.width
	return a.valueBytes[start : start+a.width]
}

func (a *FixedSizeBinary) String() string {
	return stringify(a, func(i int) string { return fmt.Sprintf("%x", a.Value(i)) })
}
