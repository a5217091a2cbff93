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
	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/internal/bitutil"
	"github.com/quiverdata/quiver/memory"
)

// Data represents the memory and metadata of an array: its type, logical
// length, offset into the shared buffers, null count, value buffers and
// child data for nested types.
//
// Buffer 0 is always the validity bitmap (nil when no value is null).
// Data is immutable once constructed; slices share the same buffers with
// a different offset and length.
type Data struct {
	dtype     quiver.DataType
	length    int
	offset    int
	nulls     int
	buffers   []*memory.Buffer
	childData []*Data
}

// NewData constructs a Data. A negative nulls has the null count computed
// from the validity bitmap.
func NewData(dtype quiver.DataType, length int, buffers []*memory.Buffer, childData []*Data, nulls, offset int) *Data {
	d := &Data{
		dtype:     dtype,
		length:    length,
		offset:    offset,
		nulls:     nulls,
		buffers:   buffers,
		childData: childData,
	}
	if nulls < 0 {
		d.nulls = d.countNulls()
	}
	return d
}

func (d *Data) countNulls() int {
	if len(d.buffers) == 0 || d.buffers[0] == nil || d.buffers[0].Len() == 0 {
		return 0
	}
	valid := bitutil.CountSetBits(d.buffers[0].Bytes(), d.offset, d.length)
	return d.length - valid
}

func (d *Data) DataType() quiver.DataType { return d.dtype }
func (d *Data) Len() int                  { return d.length }
func (d *Data) Offset() int               { return d.offset }
func (d *Data) NullN() int                { return d.nulls }
func (d *Data) Buffers() []*memory.Buffer { return d.buffers }
func (d *Data) Children() []*Data         { return d.childData }

// NewSliceData returns a view of d spanning logical rows [i, j). The
// buffers are shared, never copied.
func NewSliceData(d *Data, i, j int) *Data {
	return NewData(d.dtype, j-i, d.buffers, d.childData, -1, d.offset+i)
}
