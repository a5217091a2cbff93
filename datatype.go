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

package quiver

import "strconv"

// Type is a logical type id. A logical type is expressed as either a
// primitive physical type (bytes or bits of some fixed size), a
// variable-length binary type, or a nested type composed of other types.
type Type int

const (
	// NULL type having no physical storage
	NULL Type = iota

	// BOOL is a 1 bit, LSB bit-packed ordering
	BOOL

	// UINT8 is an Unsigned 8-bit little-endian integer
	UINT8

	// INT8 is a Signed 8-bit little-endian integer
	INT8

	// UINT16 is an Unsigned 16-bit little-endian integer
	UINT16

	// INT16 is a Signed 16-bit little-endian integer
	INT16

	// UINT32 is an Unsigned 32-bit little-endian integer
	UINT32

	// INT32 is a Signed 32-bit little-endian integer
	INT32

	// UINT64 is an Unsigned 64-bit little-endian integer
	UINT64

	// INT64 is a Signed 64-bit little-endian integer
	INT64

	// FLOAT32 is a 4-byte floating point value
	FLOAT32

	// FLOAT64 is an 8-byte floating point value
	FLOAT64

	// STRING is a UTF8 variable-length string
	STRING

	// BINARY is a Variable-length byte type (no guarantee of UTF8-ness)
	BINARY

	// FIXED_SIZE_BINARY is a binary where each value occupies the same number of bytes
	FIXED_SIZE_BINARY

	// DATE32 is int32 days since the UNIX epoch
	DATE32

	// DATE64 is int64 milliseconds since the UNIX epoch
	DATE64

	// TIMESTAMP is an exact timestamp encoded with int64 since UNIX epoch
	TIMESTAMP

	// TIME32 is a signed 32-bit integer, representing either seconds or
	// milliseconds since midnight
	TIME32

	// TIME64 is a signed 64-bit integer, representing either microseconds or
	// nanoseconds since midnight
	TIME64

	// DECIMAL128 is a precision- and scale-based decimal type backed by
	// 128 bits of storage
	DECIMAL128

	// LIST is a list of some logical data type
	LIST

	// STRUCT of logical types
	STRUCT
)

func (t Type) String() string {
	switch t {
	case NULL:
		return "null"
	case BOOL:
		return "bool"
	case UINT8:
		return "uint8"
	case INT8:
		return "int8"
	case UINT16:
		return "uint16"
	case INT16:
		return "int16"
	case UINT32:
		return "uint32"
	case INT32:
		return "int32"
	case UINT64:
		return "uint64"
	case INT64:
		return "int64"
	case FLOAT32:
		return "float32"
	case FLOAT64:
		return "float64"
	case STRING:
		return "utf8"
	case BINARY:
		return "binary"
	case FIXED_SIZE_BINARY:
		return "fixed_size_binary"
	case DATE32:
		return "date32"
	case DATE64:
		return "date64"
	case TIMESTAMP:
		return "timestamp"
	case TIME32:
		return "time32"
	case TIME64:
		return "time64"
	case DECIMAL128:
		return "decimal128"
	case LIST:
		return "list"
	case STRUCT:
		return "struct"
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// DataType is the representation of a quiver logical type. Two DataTypes
// are equal iff their ids and all kind-specific parameters match; use
// TypeEqual rather than comparing interface values.
type DataType interface {
	ID() Type
	// Name is the name of the data type.
	Name() string
	// Fingerprint returns a string that uniquely identifies the type,
	// including all of its parameters.
	Fingerprint() string
	String() string
}

// FixedWidthDataType is a DataType whose elements occupy a fixed number
// of bits in memory.
type FixedWidthDataType interface {
	DataType
	// BitWidth returns the number of bits required to store a single element in memory.
	BitWidth() int
}

// BinaryDataType is implemented by the variable-length binary types
// (Binary and String).
type BinaryDataType interface {
	DataType
	binary()
}

// NestedType is a type that is composed of child fields.
type NestedType interface {
	DataType
	Fields() []Field
}

func typeIDFingerprint(id Type) string {
	return "@" + string(rune(int(id)+int('A')))
}

// IsInteger reports whether t is one of the fixed-width integer ids.
func IsInteger(t Type) bool {
	switch t {
	case UINT8, INT8, UINT16, INT16, UINT32, INT32, UINT64, INT64:
		return true
	}
	return false
}

// IsUnsignedInteger reports whether t is an unsigned integer id.
func IsUnsignedInteger(t Type) bool {
	switch t {
	case UINT8, UINT16, UINT32, UINT64:
		return true
	}
	return false
}

// IsFloating reports whether t is a floating point id.
func IsFloating(t Type) bool {
	return t == FLOAT32 || t == FLOAT64
}

// IsNumeric reports whether t is an integer or floating point id.
func IsNumeric(t Type) bool {
	return IsInteger(t) || IsFloating(t)
}

// IsTemporal reports whether t stores an instant or time-of-day value.
func IsTemporal(t Type) bool {
	switch t {
	case DATE32, DATE64, TIMESTAMP, TIME32, TIME64:
		return true
	}
	return false
}

// TypeEqual reports whether two DataTypes are equal: same id and, for
// parameterized and nested kinds, equal parameters and child fields.
func TypeEqual(left, right DataType) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case left.ID() != right.ID():
		return false
	}

	switch l := left.(type) {
	case *TimestampType:
		r := right.(*TimestampType)
		return l.Unit == r.Unit && l.TimeZone == r.TimeZone
	case *Time32Type:
		return l.Unit == right.(*Time32Type).Unit
	case *Time64Type:
		return l.Unit == right.(*Time64Type).Unit
	case *Decimal128Type:
		r := right.(*Decimal128Type)
		return l.Precision == r.Precision && l.Scale == r.Scale
	case *FixedSizeBinaryType:
		return l.ByteWidth == right.(*FixedSizeBinaryType).ByteWidth
	case *ListType:
		r := right.(*ListType)
		return TypeEqual(l.Elem(), r.Elem())
	case *StructType:
		r := right.(*StructType)
		if l.NumFields() != r.NumFields() {
			return false
		}
		for i, f := range l.fields {
			if f.Name != r.fields[i].Name || f.Nullable != r.fields[i].Nullable {
				return false
			}
			if !TypeEqual(f.Type, r.fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
