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

// Package array provides the immutable, typed, columnar sequences at the
// heart of quiver: arrays, chunked arrays, records and tables.
//
// Every transformation (slice, cast, filter, concatenation of tables)
// produces a new value; existing arrays are never mutated and their
// backing buffers may be shared by any number of views.
package array

import (
	"fmt"
	"strings"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/internal/bitutil"
)

// Array is an immutable sequence of values of uniform logical type with
// an associated validity bitmap. A null entry's value is unspecified and
// must be ignored.
type Array interface {
	DataType() quiver.DataType

	// Len returns the number of elements.
	Len() int

	// NullN returns the number of null elements.
	NullN() int

	// IsNull reports whether element i is null.
	IsNull(i int) bool

	// IsValid reports whether element i is not null.
	IsValid(i int) bool

	// Data returns the underlying array data.
	Data() *Data

	fmt.Stringer
}

type array struct {
	data            *Data
	nullBitmapBytes []byte
}

func (a *array) setData(d *Data) {
	a.data = d
	if len(d.buffers) > 0 && d.buffers[0] != nil {
		a.nullBitmapBytes = d.buffers[0].Bytes()
	}
}

func (a *array) DataType() quiver.DataType { return a.data.dtype }
func (a *array) Len() int                  { return a.data.length }
func (a *array) NullN() int                { return a.data.nulls }
func (a *array) Data() *Data               { return a.data }

func (a *array) IsNull(i int) bool {
	return len(a.nullBitmapBytes) != 0 && !bitutil.BitIsSet(a.nullBitmapBytes, a.data.offset+i)
}

func (a *array) IsValid(i int) bool {
	return len(a.nullBitmapBytes) == 0 || bitutil.BitIsSet(a.nullBitmapBytes, a.data.offset+i)
}

// MakeFromData constructs the concrete array for d's data type.
//
// MakeFromData panics on an unsupported type.
func MakeFromData(d *Data) Array {
	switch d.dtype.ID() {
	case quiver.NULL:
		return newNullData(d)
	case quiver.BOOL:
		return newBooleanData(d)
	case quiver.INT8:
		return newNumericData[int8](d)
	case quiver.INT16:
		return newNumericData[int16](d)
	case quiver.INT32:
		return newNumericData[int32](d)
	case quiver.INT64:
		return newNumericData[int64](d)
	case quiver.UINT8:
		return newNumericData[uint8](d)
	case quiver.UINT16:
		return newNumericData[uint16](d)
	case quiver.UINT32:
		return newNumericData[uint32](d)
	case quiver.UINT64:
		return newNumericData[uint64](d)
	case quiver.FLOAT32:
		return newNumericData[float32](d)
	case quiver.FLOAT64:
		return newNumericData[float64](d)
	case quiver.DATE32:
		return newNumericData[quiver.Date32](d)
	case quiver.DATE64:
		return newNumericData[quiver.Date64](d)
	case quiver.TIMESTAMP:
		return newNumericData[quiver.Timestamp](d)
	case quiver.TIME32:
		return newNumericData[quiver.Time32](d)
	case quiver.TIME64:
		return newNumericData[quiver.Time64](d)
	case quiver.STRING:
		return newStringData(d)
	case quiver.BINARY:
		return newBinaryData(d)
	case quiver.FIXED_SIZE_BINARY:
		return newFixedSizeBinaryData(d)
	case quiver.DECIMAL128:
		return newDecimal128Data(d)
	case quiver.LIST:
		return newListData(d)
	case quiver.STRUCT:
		return newStructData(d)
	default:
		panic(fmt.Errorf("array: unsupported data type %s", d.dtype))
	}
}

// NewSlice returns a zero-copy view of rows [i, j) of arr. The view
// shares arr's buffers.
func NewSlice(arr Array, i, j int) (Array, error) {
	if i < 0 || j < i || j > arr.Len() {
		return nil, fmt.Errorf("%w: slice [%d, %d) of array of length %d",
			quiver.ErrRange, i, j, arr.Len())
	}
	return MakeFromData(NewSliceData(arr.Data(), i, j)), nil
}

func mustSlice(arr Array, offset, length int) Array {
	return MakeFromData(NewSliceData(arr.Data(), offset, offset+length))
}

func stringify(a Array, value func(i int) string) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if a.IsNull(i) {
			b.WriteString("(null)")
			continue
		}
		b.WriteString(value(i))
	}
	b.WriteString("]")
	return b.String()
}

// Null is an array of type null; it holds no storage, every element is null.
type Null struct {
	array
}

func newNullData(d *Data) *Null {
	a := &Null{}
	a.setData(d)
	return a
}

// NewNull returns a null array of length n.
func NewNull(n int) *Null {
	return newNullData(NewData(quiver.Null, n, nil, nil, n, 0))
}

func (a *Null) NullN() int         { return a.Len() }
func (a *Null) IsNull(i int) bool  { return true }
func (a *Null) IsValid(i int) bool { return false }
func (a *Null) String() string {
	return stringify(a, func(int) string { return "" })
}
