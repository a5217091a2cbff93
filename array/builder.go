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
	"github.com/quiverdata/quiver/decimal128"
	"github.com/quiverdata/quiver/internal/bitutil"
	"github.com/quiverdata/quiver/internal/debug"
	"github.com/quiverdata/quiver/memory"
)

// Builder is the mutable construction surface for arrays. A builder is
// the only place values are ever written; NewArray seals the accumulated
// values into an immutable Array and resets the builder.
type Builder interface {
	Type() quiver.DataType

	// Len returns the number of elements appended so far.
	Len() int

	// NullN returns the number of null elements appended so far.
	NullN() int

	// AppendNull appends a null element.
	AppendNull()

	// NewArray creates an Array from the accumulated values and resets
	// the builder.
	NewArray() Array
}

type builderBase struct {
	length   int
	nulls    int
	validity []byte
}

func (b *builderBase) Len() int   { return b.length }
func (b *builderBase) NullN() int { return b.nulls }

func (b *builderBase) appendValid(valid bool) {
	if need := bitutil.BytesForBits(b.length + 1); need > len(b.validity) {
		b.validity = append(b.validity, 0)
	}
	bitutil.SetBitTo(b.validity, b.length, valid)
	if !valid {
		b.nulls++
	}
	b.length++
}

func (b *builderBase) validityBuffer() *memory.Buffer {
	if b.nulls == 0 {
		return nil
	}
	return memory.NewBufferCopy(b.validity)
}

func (b *builderBase) reset() {
	b.length, b.nulls, b.validity = 0, 0, nil
}

// NewBuilder returns a builder for the given data type.
func NewBuilder(dt quiver.DataType) (Builder, error) {
	switch dt.ID() {
	case quiver.NULL:
		return &NullBuilder{}, nil
	case quiver.BOOL:
		return NewBooleanBuilder(), nil
	case quiver.INT8:
		return NewNumericBuilder[int8](dt), nil
	case quiver.INT16:
		return NewNumericBuilder[int16](dt), nil
	case quiver.INT32:
		return NewNumericBuilder[int32](dt), nil
	case quiver.INT64:
		return NewNumericBuilder[int64](dt), nil
	case quiver.UINT8:
		return NewNumericBuilder[uint8](dt), nil
	case quiver.UINT16:
		return NewNumericBuilder[uint16](dt), nil
	case quiver.UINT32:
		return NewNumericBuilder[uint32](dt), nil
	case quiver.UINT64:
		return NewNumericBuilder[uint64](dt), nil
	case quiver.FLOAT32:
		return NewNumericBuilder[float32](dt), nil
	case quiver.FLOAT64:
		return NewNumericBuilder[float64](dt), nil
	case quiver.DATE32:
		return NewNumericBuilder[quiver.Date32](dt), nil
	case quiver.DATE64:
		return NewNumericBuilder[quiver.Date64](dt), nil
	case quiver.TIMESTAMP:
		return NewNumericBuilder[quiver.Timestamp](dt), nil
	case quiver.TIME32:
		return NewNumericBuilder[quiver.Time32](dt), nil
	case quiver.TIME64:
		return NewNumericBuilder[quiver.Time64](dt), nil
	case quiver.STRING:
		return NewStringBuilder(), nil
	case quiver.BINARY:
		return NewBinaryBuilder(), nil
	case quiver.FIXED_SIZE_BINARY:
		return NewFixedSizeBinaryBuilder(dt.(*quiver.FixedSizeBinaryType)), nil
	case quiver.DECIMAL128:
		return NewDecimal128Builder(dt.(*quiver.Decimal128Type)), nil
	case quiver.LIST:
		return NewListBuilder(dt.(*quiver.ListType))
	case quiver.STRUCT:
		return NewStructBuilder(dt.(*quiver.StructType))
	default:
		return nil, fmt.Errorf("%w: no builder for type %s", quiver.ErrNotImplemented, dt)
	}
}

// NullBuilder builds arrays of the null type.
type NullBuilder struct {
	length int
}

func (b *NullBuilder) Type() quiver.DataType { return quiver.Null }
func (b *NullBuilder) Len() int              { return b.length }
func (b *NullBuilder) NullN() int            { return b.length }
func (b *NullBuilder) AppendNull()           { b.length++ }

func (b *NullBuilder) NewArray() Array {
	n := b.length
	b.length = 0
	return NewNull(n)
}

// NumericBuilder builds fixed-width arrays with Go storage type T.
type NumericBuilder[T numericValue] struct {
	builderBase
	dtype  quiver.DataType
	values []T
}

func NewNumericBuilder[T numericValue](dt quiver.DataType) *NumericBuilder[T] {
	return &NumericBuilder[T]{dtype: dt}
}

func (b *NumericBuilder[T]) Type() quiver.DataType { return b.dtype }

func (b *NumericBuilder[T]) Append(v T) {
	b.values = append(b.values, v)
	b.appendValid(true)
}

func (b *NumericBuilder[T]) AppendNull() {
	var zero T
	b.values = append(b.values, zero)
	b.appendValid(false)
}

func (b *NumericBuilder[T]) NewArray() Array {
	d := NewData(b.dtype, b.length,
		[]*memory.Buffer{b.validityBuffer(), memory.NewBufferCopy(castToBytes(b.values))},
		nil, b.nulls, 0)
	b.reset()
	b.values = nil
	return MakeFromData(d)
}

// BooleanBuilder builds bit-packed boolean arrays.
type BooleanBuilder struct {
	builderBase
	values []byte
	nset   int
}

func NewBooleanBuilder() *BooleanBuilder { return &BooleanBuilder{} }

func (b *BooleanBuilder) Type() quiver.DataType { return quiver.FixedWidthTypes.Boolean }

func (b *BooleanBuilder) Append(v bool) {
	if need := bitutil.BytesForBits(b.length + 1); need > len(b.values) {
		b.values = append(b.values, 0)
	}
	bitutil.SetBitTo(b.values, b.length, v)
	b.appendValid(true)
}

func (b *BooleanBuilder) AppendNull() {
	if need := bitutil.BytesForBits(b.length + 1); need > len(b.values) {
		b.values = append(b.values, 0)
	}
	b.appendValid(false)
}

func (b *BooleanBuilder) NewArray() Array {
	d := NewData(quiver.FixedWidthTypes.Boolean, b.length,
		[]*memory.Buffer{b.validityBuffer(), memory.NewBufferCopy(b.values)},
		nil, b.nulls, 0)
	b.reset()
	b.values = nil
	return MakeFromData(d)
}

type binaryBuilderBase struct {
	builderBase
	offsets []int32
	data    []byte
}

func (b *binaryBuilderBase) appendBytes(v []byte) {
	b.data = append(b.data, v...)
	b.offsets = append(b.offsets, int32(len(b.data)))
	b.appendValid(true)
}

func (b *binaryBuilderBase) appendNullSlot() {
	b.offsets = append(b.offsets, int32(len(b.data)))
	b.appendValid(false)
}

func (b *binaryBuilderBase) newArrayOf(dt quiver.DataType) Array {
	offsets := make([]int32, 0, b.length+1)
	offsets = append(offsets, 0)
	offsets = append(offsets, b.offsets...)
	d := NewData(dt, b.length,
		[]*memory.Buffer{
			b.validityBuffer(),
			memory.NewBufferBytes(castToBytes(offsets)),
			memory.NewBufferCopy(b.data),
		}, nil, b.nulls, 0)
	b.reset()
	b.offsets, b.data = nil, nil
	return MakeFromData(d)
}

// BinaryBuilder builds variable-length binary arrays.
type BinaryBuilder struct {
	binaryBuilderBase
}

func NewBinaryBuilder() *BinaryBuilder { return &BinaryBuilder{} }

func (b *BinaryBuilder) Type() quiver.DataType { return quiver.BinaryTypes.Binary }
func (b *BinaryBuilder) Append(v []byte)       { b.appendBytes(v) }
func (b *BinaryBuilder) AppendNull()           { b.appendNullSlot() }
func (b *BinaryBuilder) NewArray() Array       { return b.newArrayOf(quiver.BinaryTypes.Binary) }

// StringBuilder builds UTF-8 string arrays.
type StringBuilder struct {
	binaryBuilderBase
}

func NewStringBuilder() *StringBuilder { return &StringBuilder{} }

func (b *StringBuilder) Type() quiver.DataType { return quiver.BinaryTypes.String }
func (b *StringBuilder) Append(v string)       { b.appendBytes([]byte(v)) }
func (b *StringBuilder) AppendNull()           { b.appendNullSlot() }
func (b *StringBuilder) NewArray() Array       { return b.newArrayOf(quiver.BinaryTypes.String) }

// FixedSizeBinaryBuilder builds arrays of fixed-width byte values.
type FixedSizeBinaryBuilder struct {
	builderBase
	dtype *quiver.FixedSizeBinaryType
	data  []byte
}

func NewFixedSizeBinaryBuilder(dt *quiver.FixedSizeBinaryType) *FixedSizeBinaryBuilder {
	return &FixedSizeBinaryBuilder{dtype: dt}
}

func (b *FixedSizeBinaryBuilder) Type() quiver.DataType { return b.dtype }

// Append appends v, which must be exactly ByteWidth bytes.
func (b *FixedSizeBinaryBuilder) Append(v []byte) {
	if len(v) != b.dtype.ByteWidth {
		panic(fmt.Errorf("array: invalid value length %d for %s", len(v), b.dtype))
	}
	b.data = append(b.data, v...)
	b.appendValid(true)
}

func (b *FixedSizeBinaryBuilder) AppendNull() {
	b.data = append(b.data, make([]byte, b.dtype.ByteWidth)...)
	b.appendValid(false)
}

func (b *FixedSizeBinaryBuilder) NewArray() Array {
	d := NewData(b.dtype, b.length,
		[]*memory.Buffer{b.validityBuffer(), memory.NewBufferCopy(b.data)},
		nil, b.nulls, 0)
	b.reset()
	b.data = nil
	return MakeFromData(d)
}

// Decimal128Builder builds decimal arrays.
type Decimal128Builder struct {
	builderBase
	dtype  *quiver.Decimal128Type
	values []decimal128.Num
}

func NewDecimal128Builder(dt *quiver.Decimal128Type) *Decimal128Builder {
	return &Decimal128Builder{dtype: dt}
}

func (b *Decimal128Builder) Type() quiver.DataType { return b.dtype }

func (b *Decimal128Builder) Append(v decimal128.Num) {
	b.values = append(b.values, v)
	b.appendValid(true)
}

func (b *Decimal128Builder) AppendNull() {
	b.values = append(b.values, decimal128.Num{})
	b.appendValid(false)
}

func (b *Decimal128Builder) NewArray() Array {
	d := NewData(b.dtype, b.length,
		[]*memory.Buffer{b.validityBuffer(), memory.NewBufferCopy(castToBytes(b.values))},
		nil, b.nulls, 0)
	b.reset()
	b.values = nil
	return MakeFromData(d)
}

// ListBuilder builds list arrays. Call Append(true) to begin a list, then
// append its elements to ValueBuilder.
type ListBuilder struct {
	builderBase
	dtype   *quiver.ListType
	offsets []int32
	vb      Builder
}

func NewListBuilder(dt *quiver.ListType) (*ListBuilder, error) {
	vb, err := NewBuilder(dt.Elem())
	if err != nil {
		return nil, err
	}
	return &ListBuilder{dtype: dt, vb: vb}, nil
}

func (b *ListBuilder) Type() quiver.DataType { return b.dtype }

// ValueBuilder returns the builder for list elements.
func (b *ListBuilder) ValueBuilder() Builder { return b.vb }

func (b *ListBuilder) Append(valid bool) {
	b.offsets = append(b.offsets, int32(b.vb.Len()))
	b.appendValid(valid)
}

func (b *ListBuilder) AppendNull() { b.Append(false) }

func (b *ListBuilder) NewArray() Array {
	offsets := append(b.offsets, int32(b.vb.Len()))
	values := b.vb.NewArray()
	d := NewData(b.dtype, b.length,
		[]*memory.Buffer{b.validityBuffer(), memory.NewBufferBytes(castToBytes(offsets))},
		[]*Data{values.Data()}, b.nulls, 0)
	b.reset()
	b.offsets = nil
	return MakeFromData(d)
}

// StructBuilder builds struct arrays. Call Append(true) to begin a tuple,
// then append one element to every field builder.
type StructBuilder struct {
	builderBase
	dtype *quiver.StructType
	fbs   []Builder
}

func NewStructBuilder(dt *quiver.StructType) (*StructBuilder, error) {
	fbs := make([]Builder, dt.NumFields())
	for i, f := range dt.Fields() {
		fb, err := NewBuilder(f.Type)
		if err != nil {
			return nil, err
		}
		fbs[i] = fb
	}
	return &StructBuilder{dtype: dt, fbs: fbs}, nil
}

func (b *StructBuilder) Type() quiver.DataType { return b.dtype }

// FieldBuilder returns the builder for field i.
func (b *StructBuilder) FieldBuilder(i int) Builder { return b.fbs[i] }

func (b *StructBuilder) Append(valid bool) { b.appendValid(valid) }

// AppendNull appends a null tuple, including a null in every field.
func (b *StructBuilder) AppendNull() {
	b.appendValid(false)
	for _, fb := range b.fbs {
		fb.AppendNull()
	}
}

func (b *StructBuilder) NewArray() Array {
	children := make([]*Data, len(b.fbs))
	for i, fb := range b.fbs {
		debug.Assert(fb.Len() == b.length, "array: struct field length mismatch")
		children[i] = fb.NewArray().Data()
	}
	d := NewData(b.dtype, b.length,
		[]*memory.Buffer{b.validityBuffer()},
		children, b.nulls, 0)
	b.reset()
	return MakeFromData(d)
}
