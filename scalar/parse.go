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

package scalar

import (
	"fmt"
	"strconv"

	"github.com/quiverdata/quiver"
)

// MakeScalar wraps a native Go value in the scalar for its type. A nil
// value yields the null scalar of the null type.
func MakeScalar(v interface{}) Scalar {
	switch val := v.(type) {
	case nil:
		return MakeNullScalar(quiver.Null)
	case bool:
		return Boolean{Val: val}
	case int8:
		return NewPrimitive(val, quiver.PrimitiveTypes.Int8)
	case int16:
		return NewPrimitive(val, quiver.PrimitiveTypes.Int16)
	case int32:
		return NewPrimitive(val, quiver.PrimitiveTypes.Int32)
	case int64:
		return NewPrimitive(val, quiver.PrimitiveTypes.Int64)
	case int:
		return NewPrimitive(int64(val), quiver.PrimitiveTypes.Int64)
	case uint8:
		return NewPrimitive(val, quiver.PrimitiveTypes.Uint8)
	case uint16:
		return NewPrimitive(val, quiver.PrimitiveTypes.Uint16)
	case uint32:
		return NewPrimitive(val, quiver.PrimitiveTypes.Uint32)
	case uint64:
		return NewPrimitive(val, quiver.PrimitiveTypes.Uint64)
	case float32:
		return NewPrimitive(val, quiver.PrimitiveTypes.Float32)
	case float64:
		return NewPrimitive(val, quiver.PrimitiveTypes.Float64)
	case string:
		return String_{Val: val}
	case []byte:
		return Binary{Val: val, Type: quiver.BinaryTypes.Binary}
	default:
		panic(fmt.Errorf("scalar: no scalar for value of type %T", v))
	}
}

// ParseScalar parses the string representation of a value of the given
// data type.
func ParseScalar(dt quiver.DataType, val string) (Scalar, error) {
	switch dt.ID() {
	case quiver.STRING:
		return String_{Val: val}, nil
	case quiver.BINARY:
		return Binary{Val: []byte(val), Type: dt}, nil
	case quiver.BOOL:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
		}
		return Boolean{Val: b}, nil
	case quiver.INT8, quiver.INT16, quiver.INT32, quiver.INT64:
		return parseInt(dt, val, intWidth(dt))
	case quiver.UINT8, quiver.UINT16, quiver.UINT32, quiver.UINT64:
		return parseUint(dt, val, intWidth(dt))
	case quiver.FLOAT32:
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
		}
		return NewPrimitive(float32(f), dt), nil
	case quiver.FLOAT64:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
		}
		return NewPrimitive(f, dt), nil
	case quiver.DATE32:
		n, err := strconv.ParseInt(val, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
		}
		return NewPrimitive(quiver.Date32(n), dt), nil
	case quiver.DATE64:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
		}
		return NewPrimitive(quiver.Date64(n), dt), nil
	case quiver.TIMESTAMP:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
		}
		return NewPrimitive(quiver.Timestamp(n), dt), nil
	default:
		return nil, fmt.Errorf("%w: parsing scalar of type %s", quiver.ErrNotImplemented, dt)
	}
}

func intWidth(dt quiver.DataType) int {
	switch dt.ID() {
	case quiver.INT8, quiver.UINT8:
		return 8
	case quiver.INT16, quiver.UINT16:
		return 16
	case quiver.INT32, quiver.UINT32:
		return 32
	default:
		return 64
	}
}

func parseInt(dt quiver.DataType, val string, width int) (Scalar, error) {
	n, err := strconv.ParseInt(val, 10, width)
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
	}
	switch dt.ID() {
	case quiver.INT8:
		return NewPrimitive(int8(n), dt), nil
	case quiver.INT16:
		return NewPrimitive(int16(n), dt), nil
	case quiver.INT32:
		return NewPrimitive(int32(n), dt), nil
	default:
		return NewPrimitive(n, dt), nil
	}
}

func parseUint(dt quiver.DataType, val string, width int) (Scalar, error) {
	n, err := strconv.ParseUint(val, 10, width)
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %s: %v", quiver.ErrInvalid, val, dt, err)
	}
	switch dt.ID() {
	case quiver.UINT8:
		return NewPrimitive(uint8(n), dt), nil
	case quiver.UINT16:
		return NewPrimitive(uint16(n), dt), nil
	case quiver.UINT32:
		return NewPrimitive(uint32(n), dt), nil
	default:
		return NewPrimitive(n, dt), nil
	}
}

// ParsePartitionValue infers a data type for a raw partition path value
// and parses it. Integers become int64, other numbers float64, true and
// false booleans, everything else a string.
func ParsePartitionValue(val string) Scalar {
	if n, err := strconv.ParseInt(val, 10, 64); err == nil {
		return NewPrimitive(n, quiver.PrimitiveTypes.Int64)
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return NewPrimitive(f, quiver.PrimitiveTypes.Float64)
	}
	if val == "true" || val == "false" {
		return Boolean{Val: val == "true"}
	}
	return String_{Val: val}
}
