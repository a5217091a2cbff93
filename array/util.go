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

// GoValue returns element i of arr as a native Go value, or nil when the
// element is null. Binary values are returned as copies so callers may
// hold on to them.
func GoValue(arr Array, i int) interface{} {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *Null:
		return nil
	case *Boolean:
		return a.Value(i)
	case *Numeric[int8]:
		return a.Value(i)
	case *Numeric[int16]:
		return a.Value(i)
	case *Numeric[int32]:
		return a.Value(i)
	case *Numeric[int64]:
		return a.Value(i)
	case *Numeric[uint8]:
		return a.Value(i)
	case *Numeric[uint16]:
		return a.Value(i)
	case *Numeric[uint32]:
		return a.Value(i)
	case *Numeric[uint64]:
		return a.Value(i)
	case *Numeric[float32]:
		return a.Value(i)
	case *Numeric[float64]:
		return a.Value(i)
	case *Numeric[quiver.Date32]:
		return a.Value(i)
	case *Numeric[quiver.Date64]:
		return a.Value(i)
	case *Numeric[quiver.Timestamp]:
		return a.Value(i)
	case *Numeric[quiver.Time32]:
		return a.Value(i)
	case *Numeric[quiver.Time64]:
		return a.Value(i)
	case *String:
		return a.Value(i)
	case *Binary:
		return append([]byte(nil), a.Value(i)...)
	case *FixedSizeBinary:
		return append([]byte(nil), a.Value(i)...)
	case *Decimal128:
		return a.Value(i)
	case *List:
		v := a.Value(i)
		out := make([]interface{}, v.Len())
		for j := range out {
			out[j] = GoValue(v, j)
		}
		return out
	case *Struct:
		st := a.DataType().(*quiver.StructType)
		out := make(map[string]interface{}, a.NumField())
		for j := 0; j < a.NumField(); j++ {
			out[st.Field(j).Name] = GoValue(a.Field(j), i)
		}
		return out
	default:
		panic(fmt.Errorf("array: unsupported array type %T", arr))
	}
}

func valueString(arr Array, i int) string {
	return fmt.Sprintf("%v", GoValue(arr, i))
}

// AppendElement appends element i of arr to bldr, which must have an
// equal data type.
func AppendElement(bldr Builder, arr Array, i int) error {
	if !quiver.TypeEqual(bldr.Type(), arr.DataType()) {
		return fmt.Errorf("%w: cannot append %s element to %s builder",
			quiver.ErrTypeMismatch, arr.DataType(), bldr.Type())
	}
	if arr.IsNull(i) {
		bldr.AppendNull()
		return nil
	}
	switch b := bldr.(type) {
	case *NullBuilder:
		b.AppendNull()
	case *BooleanBuilder:
		b.Append(arr.(*Boolean).Value(i))
	case *NumericBuilder[int8]:
		b.Append(arr.(*Numeric[int8]).Value(i))
	case *NumericBuilder[int16]:
		b.Append(arr.(*Numeric[int16]).Value(i))
	case *NumericBuilder[int32]:
		b.Append(arr.(*Numeric[int32]).Value(i))
	case *NumericBuilder[int64]:
		b.Append(arr.(*Numeric[int64]).Value(i))
	case *NumericBuilder[uint8]:
		b.Append(arr.(*Numeric[uint8]).Value(i))
	case *NumericBuilder[uint16]:
		b.Append(arr.(*Numeric[uint16]).Value(i))
	case *NumericBuilder[uint32]:
		b.Append(arr.(*Numeric[uint32]).Value(i))
	case *NumericBuilder[uint64]:
		b.Append(arr.(*Numeric[uint64]).Value(i))
	case *NumericBuilder[float32]:
		b.Append(arr.(*Numeric[float32]).Value(i))
	case *NumericBuilder[float64]:
		b.Append(arr.(*Numeric[float64]).Value(i))
	case *NumericBuilder[quiver.Date32]:
		b.Append(arr.(*Numeric[quiver.Date32]).Value(i))
	case *NumericBuilder[quiver.Date64]:
		b.Append(arr.(*Numeric[quiver.Date64]).Value(i))
	case *NumericBuilder[quiver.Timestamp]:
		b.Append(arr.(*Numeric[quiver.Timestamp]).Value(i))
	case *NumericBuilder[quiver.Time32]:
		b.Append(arr.(*Numeric[quiver.Time32]).Value(i))
	case *NumericBuilder[quiver.Time64]:
		b.Append(arr.(*Numeric[quiver.Time64]).Value(i))
	case *StringBuilder:
		b.Append(arr.(*String).Value(i))
	case *BinaryBuilder:
		b.Append(arr.(*Binary).Value(i))
	case *FixedSizeBinaryBuilder:
		b.Append(arr.(*FixedSizeBinary).Value(i))
	case *Decimal128Builder:
		b.Append(arr.(*Decimal128).Value(i))
	case *ListBuilder:
		la := arr.(*List)
		b.Append(true)
		start, end := la.ValueOffsets(i)
		for j := start; j < end; j++ {
			if err := AppendElement(b.ValueBuilder(), la.ListValues(), int(j)); err != nil {
				return err
			}
		}
	case *StructBuilder:
		sa := arr.(*Struct)
		b.Append(true)
		for f := 0; f < sa.NumField(); f++ {
			if err := AppendElement(b.FieldBuilder(f), sa.Field(f), i); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: append for builder %T", quiver.ErrNotImplemented, bldr)
	}
	return nil
}
