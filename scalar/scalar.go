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

// Package scalar provides single typed values: the result of extracting
// one element from an array, and the unit that literals and partition
// values are expressed in.
package scalar

import (
	"fmt"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/decimal128"
)

// Scalar is a single value paired with its data type. A scalar is either
// valid and carries a value, or null.
type Scalar interface {
	DataType() quiver.DataType
	IsValid() bool
	// Value returns the native Go value, nil when the scalar is null.
	Value() interface{}
	String() string
}

// Null is the null scalar of any data type.
type Null struct {
	Type quiver.DataType
}

func MakeNullScalar(dt quiver.DataType) Null { return Null{Type: dt} }

func (s Null) DataType() quiver.DataType { return s.Type }
func (s Null) IsValid() bool             { return false }
func (s Null) Value() interface{}        { return nil }
func (s Null) String() string            { return "null" }

// Boolean is a valid boolean scalar.
type Boolean struct {
	Val bool
}

func (s Boolean) DataType() quiver.DataType { return quiver.FixedWidthTypes.Boolean }
func (s Boolean) IsValid() bool             { return true }
func (s Boolean) Value() interface{}        { return s.Val }
func (s Boolean) String() string            { return fmt.Sprintf("%v", s.Val) }

// Primitive is a valid fixed-width scalar with Go storage type T. The
// data type disambiguates storage types shared by several logical types,
// such as int64 backing both Int64 and Timestamp.
type Primitive[T numericValue] struct {
	Val  T
	Type quiver.DataType
}

func NewPrimitive[T numericValue](v T, dt quiver.DataType) Primitive[T] {
	return Primitive[T]{Val: v, Type: dt}
}

func (s Primitive[T]) DataType() quiver.DataType { return s.Type }
func (s Primitive[T]) IsValid() bool             { return true }
func (s Primitive[T]) Value() interface{}        { return s.Val }
func (s Primitive[T]) String() string            { return fmt.Sprintf("%v", s.Val) }

type numericValue interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// String_ is a valid UTF-8 string scalar. The trailing underscore avoids
// colliding with the String method convention.
type String_ struct {
	Val string
}

func (s String_) DataType() quiver.DataType { return quiver.BinaryTypes.String }
func (s String_) IsValid() bool             { return true }
func (s String_) Value() interface{}        { return s.Val }
func (s String_) String() string            { return s.Val }

// Binary is a valid variable-length binary scalar.
type Binary struct {
	Val  []byte
	Type quiver.DataType
}

func (s Binary) DataType() quiver.DataType { return s.Type }
func (s Binary) IsValid() bool             { return true }
func (s Binary) Value() interface{}        { return s.Val }
func (s Binary) String() string            { return fmt.Sprintf("%x", s.Val) }

// Decimal128 is a valid 128-bit decimal scalar.
type Decimal128 struct {
	Val  decimal128.Num
	Type *quiver.Decimal128Type
}

func (s Decimal128) DataType() quiver.DataType { return s.Type }
func (s Decimal128) IsValid() bool             { return true }
func (s Decimal128) Value() interface{}        { return s.Val }
func (s Decimal128) String() string            { return s.Val.String() }

// List is a valid list scalar holding its elements as an array.
type List struct {
	Val  array.Array
	Type *quiver.ListType
}

func (s List) DataType() quiver.DataType { return s.Type }
func (s List) IsValid() bool             { return true }
func (s List) Value() interface{}        { return s.Val }
func (s List) String() string            { return s.Val.String() }

// Struct is a valid struct scalar holding one scalar per field.
type Struct struct {
	Vals []Scalar
	Type *quiver.StructType
}

func (s Struct) DataType() quiver.DataType { return s.Type }
func (s Struct) IsValid() bool             { return true }

func (s Struct) Value() interface{} {
	out := make(map[string]interface{}, len(s.Vals))
	for i, v := range s.Vals {
		out[s.Type.Field(i).Name] = v.Value()
	}
	return out
}

func (s Struct) String() string { return fmt.Sprintf("%v", s.Value()) }

// Equals reports whether two scalars have equal data types and equal
// values. Two null scalars of the same type are equal.
func Equals(left, right Scalar) bool {
	if !quiver.TypeEqual(left.DataType(), right.DataType()) {
		return false
	}
	if left.IsValid() != right.IsValid() {
		return false
	}
	if !left.IsValid() {
		return true
	}
	switch l := left.(type) {
	case List:
		return array.Equal(l.Val, right.(List).Val)
	case Binary:
		lb, rb := l.Val, right.(Binary).Val
		if len(lb) != len(rb) {
			return false
		}
		for i := range lb {
			if lb[i] != rb[i] {
				return false
			}
		}
		return true
	case Struct:
		r := right.(Struct)
		for i := range l.Vals {
			if !Equals(l.Vals[i], r.Vals[i]) {
				return false
			}
		}
		return true
	default:
		return left.Value() == right.Value()
	}
}

// GetScalar extracts element i of arr as a scalar.
func GetScalar(arr array.Array, i int) (Scalar, error) {
	if i < 0 || i >= arr.Len() {
		return nil, fmt.Errorf("%w: index %d of array of length %d", quiver.ErrRange, i, arr.Len())
	}
	if arr.IsNull(i) {
		return MakeNullScalar(arr.DataType()), nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return Boolean{Val: a.Value(i)}, nil
	case *array.Numeric[int8]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[int16]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[int32]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[int64]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[uint8]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[uint16]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[uint32]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[uint64]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[float32]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[float64]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[quiver.Date32]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[quiver.Date64]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[quiver.Timestamp]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[quiver.Time32]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.Numeric[quiver.Time64]:
		return NewPrimitive(a.Value(i), a.DataType()), nil
	case *array.String:
		return String_{Val: a.Value(i)}, nil
	case *array.Binary:
		return Binary{Val: append([]byte(nil), a.Value(i)...), Type: a.DataType()}, nil
	case *array.FixedSizeBinary:
		return Binary{Val: append([]byte(nil), a.Value(i)...), Type: a.DataType()}, nil
	case *array.Decimal128:
		return Decimal128{Val: a.Value(i), Type: a.DataType().(*quiver.Decimal128Type)}, nil
	case *array.List:
		return List{Val: a.Value(i), Type: a.DataType().(*quiver.ListType)}, nil
	case *array.Struct:
		st := a.DataType().(*quiver.StructType)
		vals := make([]Scalar, a.NumField())
		for f := range vals {
			s, err := GetScalar(a.Field(f), i)
			if err != nil {
				return nil, err
			}
			vals[f] = s
		}
		return Struct{Vals: vals, Type: st}, nil
	default:
		return nil, fmt.Errorf("%w: scalar extraction from %T", quiver.ErrNotImplemented, arr)
	}
}

// GetScalarChunked extracts global element i of a chunked array.
func GetScalarChunked(c *array.Chunked, i int) (Scalar, error) {
	chunk, offset, err := c.Resolve(i)
	if err != nil {
		return nil, err
	}
	return GetScalar(c.Chunk(chunk), offset)
}

// MakeArrayFromScalar builds an array of length n with every element
// equal to s. Used to materialize partition columns.
func MakeArrayFromScalar(s Scalar, n int) (array.Array, error) {
	bldr, err := array.NewBuilder(s.DataType())
	if err != nil {
		return nil, err
	}
	if !s.IsValid() {
		for i := 0; i < n; i++ {
			bldr.AppendNull()
		}
		return bldr.NewArray(), nil
	}
	v := s.Value()
	if ls, ok := s.(List); ok {
		elems := make([]interface{}, ls.Val.Len())
		for i := range elems {
			elems[i] = array.GoValue(ls.Val, i)
		}
		v = elems
	}
	for i := 0; i < n; i++ {
		if err := array.AppendValue(bldr, v); err != nil {
			return nil, err
		}
	}
	return bldr.NewArray(), nil
}
