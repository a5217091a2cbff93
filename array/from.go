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
)

// FromSlice builds an array from a Go slice of a primitive type, with
// nil interface elements becoming nulls when the input is []interface{}.
func FromSlice(values interface{}) (Array, error) {
	dt, err := inferType(values)
	if err != nil {
		return nil, err
	}
	return FromSliceWithType(dt, values)
}

// FromSliceWithType builds an array of the given data type from a Go
// slice; element Go types must match the storage type.
func FromSliceWithType(dt quiver.DataType, values interface{}) (Array, error) {
	bldr, err := NewBuilder(dt)
	if err != nil {
		return nil, err
	}
	switch vs := values.(type) {
	case []bool:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []int8:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []int16:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []int32:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []int64:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []uint8:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []uint16:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []uint32:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []uint64:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []float32:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []float64:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []string:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case [][]byte:
		for _, v := range vs {
			if v == nil {
				bldr.AppendNull()
				continue
			}
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	case []interface{}:
		for _, v := range vs {
			if err := AppendValue(bldr, v); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: building array from %T", quiver.ErrTypeMismatch, values)
	}
	return bldr.NewArray(), nil
}

func inferType(values interface{}) (quiver.DataType, error) {
	switch vs := values.(type) {
	case []bool:
		return quiver.FixedWidthTypes.Boolean, nil
	case []int8:
		return quiver.PrimitiveTypes.Int8, nil
	case []int16:
		return quiver.PrimitiveTypes.Int16, nil
	case []int32:
		return quiver.PrimitiveTypes.Int32, nil
	case []int64:
		return quiver.PrimitiveTypes.Int64, nil
	case []uint8:
		return quiver.PrimitiveTypes.Uint8, nil
	case []uint16:
		return quiver.PrimitiveTypes.Uint16, nil
	case []uint32:
		return quiver.PrimitiveTypes.Uint32, nil
	case []uint64:
		return quiver.PrimitiveTypes.Uint64, nil
	case []float32:
		return quiver.PrimitiveTypes.Float32, nil
	case []float64:
		return quiver.PrimitiveTypes.Float64, nil
	case []string:
		return quiver.BinaryTypes.String, nil
	case [][]byte:
		return quiver.BinaryTypes.Binary, nil
	case []interface{}:
		for _, v := range vs {
			if v == nil {
				continue
			}
			return inferValueType(v)
		}
		return quiver.Null, nil
	default:
		return nil, fmt.Errorf("%w: cannot infer data type from %T", quiver.ErrTypeMismatch, values)
	}
}

func inferValueType(v interface{}) (quiver.DataType, error) {
	switch v.(type) {
	case bool:
		return quiver.FixedWidthTypes.Boolean, nil
	case int8:
		return quiver.PrimitiveTypes.Int8, nil
	case int16:
		return quiver.PrimitiveTypes.Int16, nil
	case int32:
		return quiver.PrimitiveTypes.Int32, nil
	case int, int64:
		return quiver.PrimitiveTypes.Int64, nil
	case uint8:
		return quiver.PrimitiveTypes.Uint8, nil
	case uint16:
		return quiver.PrimitiveTypes.Uint16, nil
	case uint32:
		return quiver.PrimitiveTypes.Uint32, nil
	case uint64:
		return quiver.PrimitiveTypes.Uint64, nil
	case float32:
		return quiver.PrimitiveTypes.Float32, nil
	case float64:
		return quiver.PrimitiveTypes.Float64, nil
	case string:
		return quiver.BinaryTypes.String, nil
	case []byte:
		return quiver.BinaryTypes.Binary, nil
	default:
		return nil, fmt.Errorf("%w: cannot infer data type from value %T", quiver.ErrTypeMismatch, v)
	}
}

// AppendValue appends a native Go value to bldr. A nil value appends a
// null. Integer values of type int are accepted by int64 builders.
func AppendValue(bldr Builder, v interface{}) error {
	if v == nil {
		bldr.AppendNull()
		return nil
	}
	mismatch := func() error {
		return fmt.Errorf("%w: value %T for %s builder", quiver.ErrTypeMismatch, v, bldr.Type())
	}
	switch b := bldr.(type) {
	case *NullBuilder:
		return mismatch()
	case *BooleanBuilder:
		bv, ok := v.(bool)
		if !ok {
			return mismatch()
		}
		b.Append(bv)
	case *NumericBuilder[int8]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[int16]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[int32]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[int64]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[uint8]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[uint16]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[uint32]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[uint64]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[float32]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[float64]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[quiver.Date32]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[quiver.Date64]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[quiver.Timestamp]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[quiver.Time32]:
		return appendNumericValue(b, v, mismatch)
	case *NumericBuilder[quiver.Time64]:
		return appendNumericValue(b, v, mismatch)
	case *StringBuilder:
		sv, ok := v.(string)
		if !ok {
			return mismatch()
		}
		b.Append(sv)
	case *BinaryBuilder:
		bv, ok := v.([]byte)
		if !ok {
			return mismatch()
		}
		b.Append(bv)
	case *FixedSizeBinaryBuilder:
		bv, ok := v.([]byte)
		if !ok || len(bv) != b.dtype.ByteWidth {
			return mismatch()
		}
		b.Append(bv)
	case *Decimal128Builder:
		dv, ok := v.(decimal128.Num)
		if !ok {
			return mismatch()
		}
		b.Append(dv)
	case *ListBuilder:
		elems, ok := v.([]interface{})
		if !ok {
			return mismatch()
		}
		b.Append(true)
		for _, e := range elems {
			if err := AppendValue(b.ValueBuilder(), e); err != nil {
				return err
			}
		}
	case *StructBuilder:
		m, ok := v.(map[string]interface{})
		if !ok {
			return mismatch()
		}
		st := b.Type().(*quiver.StructType)
		b.Append(true)
		for i := 0; i < st.NumFields(); i++ {
			if err := AppendValue(b.FieldBuilder(i), m[st.Field(i).Name]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: append value for builder %T", quiver.ErrNotImplemented, bldr)
	}
	return nil
}

// appendNumericValue converts v to the builder's storage type. Exact Go
// type matches and the widenings json decoding produces (int, int64,
// float64) are accepted, but only when the storage type represents the
// value exactly; a lossy conversion is an overflow error.
func appendNumericValue[T numericValue](b *NumericBuilder[T], v interface{}, mismatch func() error) error {
	switch n := v.(type) {
	case T:
		b.Append(n)
		return nil
	case int:
		return appendCheckedInt(b, int64(n))
	case int64:
		return appendCheckedInt(b, n)
	case float64:
		c := T(n)
		if float64(c) != n {
			return fmt.Errorf("%w: %v not representable as %s", quiver.ErrOverflow, n, b.Type())
		}
		b.Append(c)
		return nil
	default:
		return mismatch()
	}
}

func appendCheckedInt[T numericValue](b *NumericBuilder[T], n int64) error {
	c := T(n)
	// T(0)-T(1) overflows past zero only for unsigned storage, where a
	// negative input would otherwise wrap at full width.
	unsigned := T(0)-T(1) > T(0)
	if int64(c) != n || (unsigned && n < 0) {
		return fmt.Errorf("%w: %d out of range for %s", quiver.ErrOverflow, n, b.Type())
	}
	b.Append(c)
	return nil
}
