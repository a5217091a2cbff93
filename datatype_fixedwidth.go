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

import (
	"fmt"
	"strconv"
)

type (
	// Date32 represents days since the UNIX epoch.
	Date32 int32
	// Date64 represents milliseconds since the UNIX epoch.
	Date64 int64
	// Timestamp represents time since the UNIX epoch in the unit of its type.
	Timestamp int64
	// Time32 represents time since midnight in seconds or milliseconds.
	Time32 int32
	// Time64 represents time since midnight in microseconds or nanoseconds.
	Time64 int64
)

// TimeUnit is the granularity of a temporal type.
type TimeUnit int

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)

func (u TimeUnit) String() string {
	return [...]string{"s", "ms", "us", "ns"}[u]
}

// Multiplier returns the number of nanoseconds in one unit.
func (u TimeUnit) Multiplier() int64 {
	return [...]int64{1e9, 1e6, 1e3, 1}[u]
}

func timeUnitFingerprint(unit TimeUnit) string {
	return [...]string{"s", "m", "u", "n"}[unit]
}

type NullType struct{}

func (NullType) ID() Type            { return NULL }
func (NullType) Name() string        { return "null" }
func (NullType) String() string      { return "null" }
func (NullType) Fingerprint() string { return typeIDFingerprint(NULL) }

type BooleanType struct{}

func (BooleanType) ID() Type            { return BOOL }
func (BooleanType) Name() string        { return "bool" }
func (BooleanType) String() string      { return "bool" }
func (BooleanType) BitWidth() int       { return 1 }
func (BooleanType) Fingerprint() string { return typeIDFingerprint(BOOL) }

type Int8Type struct{}

func (Int8Type) ID() Type            { return INT8 }
func (Int8Type) Name() string        { return "int8" }
func (Int8Type) String() string      { return "int8" }
func (Int8Type) BitWidth() int       { return 8 }
func (Int8Type) Fingerprint() string { return typeIDFingerprint(INT8) }

type Int16Type struct{}

func (Int16Type) ID() Type            { return INT16 }
func (Int16Type) Name() string        { return "int16" }
func (Int16Type) String() string      { return "int16" }
func (Int16Type) BitWidth() int       { return 16 }
func (Int16Type) Fingerprint() string { return typeIDFingerprint(INT16) }

type Int32Type struct{}

func (Int32Type) ID() Type            { return INT32 }
func (Int32Type) Name() string        { return "int32" }
func (Int32Type) String() string      { return "int32" }
func (Int32Type) BitWidth() int       { return 32 }
func (Int32Type) Fingerprint() string { return typeIDFingerprint(INT32) }

type Int64Type struct{}

func (Int64Type) ID() Type            { return INT64 }
func (Int64Type) Name() string        { return "int64" }
func (Int64Type) String() string      { return "int64" }
func (Int64Type) BitWidth() int       { return 64 }
func (Int64Type) Fingerprint() string { return typeIDFingerprint(INT64) }

type Uint8Type struct{}

func (Uint8Type) ID() Type            { return UINT8 }
func (Uint8Type) Name() string        { return "uint8" }
func (Uint8Type) String() string      { return "uint8" }
func (Uint8Type) BitWidth() int       { return 8 }
func (Uint8Type) Fingerprint() string { return typeIDFingerprint(UINT8) }

type Uint16Type struct{}

func (Uint16Type) ID() Type            { return UINT16 }
func (Uint16Type) Name() string        { return "uint16" }
func (Uint16Type) String() string      { return "uint16" }
func (Uint16Type) BitWidth() int       { return 16 }
func (Uint16Type) Fingerprint() string { return typeIDFingerprint(UINT16) }

type Uint32Type struct{}

func (Uint32Type) ID() Type            { return UINT32 }
func (Uint32Type) Name() string        { return "uint32" }
func (Uint32Type) String() string      { return "uint32" }
func (Uint32Type) BitWidth() int       { return 32 }
func (Uint32Type) Fingerprint() string { return typeIDFingerprint(UINT32) }

type Uint64Type struct{}

func (Uint64Type) ID() Type            { return UINT64 }
func (Uint64Type) Name() string        { return "uint64" }
func (Uint64Type) String() string      { return "uint64" }
func (Uint64Type) BitWidth() int       { return 64 }
func (Uint64Type) Fingerprint() string { return typeIDFingerprint(UINT64) }

type Float32Type struct{}

func (Float32Type) ID() Type            { return FLOAT32 }
func (Float32Type) Name() string        { return "float32" }
func (Float32Type) String() string      { return "float32" }
func (Float32Type) BitWidth() int       { return 32 }
func (Float32Type) Fingerprint() string { return typeIDFingerprint(FLOAT32) }

type Float64Type struct{}

func (Float64Type) ID() Type            { return FLOAT64 }
func (Float64Type) Name() string        { return "float64" }
func (Float64Type) String() string      { return "float64" }
func (Float64Type) BitWidth() int       { return 64 }
func (Float64Type) Fingerprint() string { return typeIDFingerprint(FLOAT64) }

type Date32Type struct{}

func (Date32Type) ID() Type            { return DATE32 }
func (Date32Type) Name() string        { return "date32" }
func (Date32Type) String() string      { return "date32[day]" }
func (Date32Type) BitWidth() int       { return 32 }
func (Date32Type) Fingerprint() string { return typeIDFingerprint(DATE32) }

type Date64Type struct{}

func (Date64Type) ID() Type            { return DATE64 }
func (Date64Type) Name() string        { return "date64" }
func (Date64Type) String() string      { return "date64[ms]" }
func (Date64Type) BitWidth() int       { return 64 }
func (Date64Type) Fingerprint() string { return typeIDFingerprint(DATE64) }

// TimestampType describes an instant in time with a unit and an optional
// timezone. An empty timezone means timezone-naive.
type TimestampType struct {
	Unit     TimeUnit
	TimeZone string
}

func (*TimestampType) ID() Type      { return TIMESTAMP }
func (*TimestampType) Name() string  { return "timestamp" }
func (*TimestampType) BitWidth() int { return 64 }
func (t *TimestampType) String() string {
	return fmt.Sprintf("timestamp[%s, tz=%q]", t.Unit, t.TimeZone)
}
func (t *TimestampType) Fingerprint() string {
	return typeIDFingerprint(TIMESTAMP) + timeUnitFingerprint(t.Unit) + ":" + t.TimeZone
}

// Time32Type describes a time of day stored as 32 bits; the unit must be
// Second or Millisecond.
type Time32Type struct {
	Unit TimeUnit
}

func (*Time32Type) ID() Type          { return TIME32 }
func (*Time32Type) Name() string      { return "time32" }
func (*Time32Type) BitWidth() int     { return 32 }
func (t *Time32Type) String() string  { return fmt.Sprintf("time32[%s]", t.Unit) }
func (t *Time32Type) Fingerprint() string {
	return typeIDFingerprint(TIME32) + timeUnitFingerprint(t.Unit)
}

// Time64Type describes a time of day stored as 64 bits; the unit must be
// Microsecond or Nanosecond.
type Time64Type struct {
	Unit TimeUnit
}

func (*Time64Type) ID() Type          { return TIME64 }
func (*Time64Type) Name() string      { return "time64" }
func (*Time64Type) BitWidth() int     { return 64 }
func (t *Time64Type) String() string  { return fmt.Sprintf("time64[%s]", t.Unit) }
func (t *Time64Type) Fingerprint() string {
	return typeIDFingerprint(TIME64) + timeUnitFingerprint(t.Unit)
}

// Decimal128Type describes a fixed-point decimal with the given precision
// (total number of digits) and scale (digits after the radix point).
type Decimal128Type struct {
	Precision int32
	Scale     int32
}

func (*Decimal128Type) ID() Type      { return DECIMAL128 }
func (*Decimal128Type) Name() string  { return "decimal128" }
func (*Decimal128Type) BitWidth() int { return 128 }
func (t *Decimal128Type) String() string {
	return fmt.Sprintf("decimal128(%d, %d)", t.Precision, t.Scale)
}
func (t *Decimal128Type) Fingerprint() string {
	return typeIDFingerprint(DECIMAL128) +
		strconv.Itoa(int(t.Precision)) + "," + strconv.Itoa(int(t.Scale))
}

var (
	Null DataType = NullType{}

	PrimitiveTypes = struct {
		Int8    DataType
		Int16   DataType
		Int32   DataType
		Int64   DataType
		Uint8   DataType
		Uint16  DataType
		Uint32  DataType
		Uint64  DataType
		Float32 DataType
		Float64 DataType
	}{
		Int8:    Int8Type{},
		Int16:   Int16Type{},
		Int32:   Int32Type{},
		Int64:   Int64Type{},
		Uint8:   Uint8Type{},
		Uint16:  Uint16Type{},
		Uint32:  Uint32Type{},
		Uint64:  Uint64Type{},
		Float32: Float32Type{},
		Float64: Float64Type{},
	}

	FixedWidthTypes = struct {
		Boolean      DataType
		Date32       DataType
		Date64       DataType
		Time32s      DataType
		Time32ms     DataType
		Time64us     DataType
		Time64ns     DataType
		Timestamp_s  DataType
		Timestamp_ms DataType
		Timestamp_us DataType
		Timestamp_ns DataType
	}{
		Boolean:      BooleanType{},
		Date32:       Date32Type{},
		Date64:       Date64Type{},
		Time32s:      &Time32Type{Unit: Second},
		Time32ms:     &Time32Type{Unit: Millisecond},
		Time64us:     &Time64Type{Unit: Microsecond},
		Time64ns:     &Time64Type{Unit: Nanosecond},
		Timestamp_s:  &TimestampType{Unit: Second, TimeZone: "UTC"},
		Timestamp_ms: &TimestampType{Unit: Millisecond, TimeZone: "UTC"},
		Timestamp_us: &TimestampType{Unit: Microsecond, TimeZone: "UTC"},
		Timestamp_ns: &TimestampType{Unit: Nanosecond, TimeZone: "UTC"},
	}
)
