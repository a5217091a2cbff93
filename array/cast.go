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
	"math"

	"github.com/JohnCGriffin/overflow"

	"github.com/quiverdata/quiver"
)

// Cast converts arr to the target data type, copying values into a new
// array. Nulls stay null. Conversions that cannot represent a value
// exactly (integer narrowing out of range, float to integer with a
// fractional part, timestamp unit rescale overflow) fail with a value
// error rather than wrapping around. Casts to a floating-point target
// are value-approximating: they round to the nearest representable
// value, as float arithmetic itself does.
func Cast(arr Array, to quiver.DataType) (Array, error) {
	if quiver.TypeEqual(arr.DataType(), to) {
		return arr, nil
	}
	from := arr.DataType()
	switch {
	case quiver.IsNumeric(from.ID()) && quiver.IsNumeric(to.ID()):
		return castNumeric(arr, to)
	case from.ID() == quiver.TIMESTAMP && to.ID() == quiver.TIMESTAMP:
		return castTimestamp(arr.(*Numeric[quiver.Timestamp]), to.(*quiver.TimestampType))
	case from.ID() == quiver.STRING && to.ID() == quiver.BINARY:
		return stringToBinary(arr.(*String)), nil
	case from.ID() == quiver.BINARY && to.ID() == quiver.STRING:
		return binaryToString(arr.(*Binary)), nil
	}
	return nil, fmt.Errorf("%w: cast from %s to %s", quiver.ErrTypeMismatch, from, to)
}

// numericAt reads element i of any numeric array as (int64, uint64,
// float64) with a tag saying which representation is authoritative.
type numKind int

const (
	numSigned numKind = iota
	numUnsigned
	numFloat
)

func numericAt(arr Array, i int) (s int64, u uint64, f float64, kind numKind) {
	switch a := arr.(type) {
	case *Numeric[int8]:
		return int64(a.Value(i)), 0, 0, numSigned
	case *Numeric[int16]:
		return int64(a.Value(i)), 0, 0, numSigned
	case *Numeric[int32]:
		return int64(a.Value(i)), 0, 0, numSigned
	case *Numeric[int64]:
		return a.Value(i), 0, 0, numSigned
	case *Numeric[uint8]:
		return 0, uint64(a.Value(i)), 0, numUnsigned
	case *Numeric[uint16]:
		return 0, uint64(a.Value(i)), 0, numUnsigned
	case *Numeric[uint32]:
		return 0, uint64(a.Value(i)), 0, numUnsigned
	case *Numeric[uint64]:
		return 0, a.Value(i), 0, numUnsigned
	case *Numeric[float32]:
		return 0, 0, float64(a.Value(i)), numFloat
	case *Numeric[float64]:
		return 0, 0, a.Value(i), numFloat
	default:
		panic(fmt.Errorf("array: non-numeric array %T", arr))
	}
}

func castNumeric(arr Array, to quiver.DataType) (Array, error) {
	bldr, err := NewBuilder(to)
	if err != nil {
		return nil, err
	}
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			bldr.AppendNull()
			continue
		}
		s, u, f, kind := numericAt(arr, i)
		if err := appendCastNumeric(bldr, s, u, f, kind, to); err != nil {
			return nil, fmt.Errorf("%w at index %d", err, i)
		}
	}
	return bldr.NewArray(), nil
}

func appendCastNumeric(bldr Builder, s int64, u uint64, f float64, kind numKind, to quiver.DataType) error {
	// normalize to int64 for integer targets, float64 for float targets
	switch to.ID() {
	case quiver.FLOAT32:
		v := toFloat(s, u, f, kind)
		bldr.(*NumericBuilder[float32]).Append(float32(v))
		return nil
	case quiver.FLOAT64:
		bldr.(*NumericBuilder[float64]).Append(toFloat(s, u, f, kind))
		return nil
	}

	sv, err := toSigned(s, u, f, kind, to)
	if err != nil {
		return err
	}
	switch to.ID() {
	case quiver.INT8:
		bldr.(*NumericBuilder[int8]).Append(int8(sv))
	case quiver.INT16:
		bldr.(*NumericBuilder[int16]).Append(int16(sv))
	case quiver.INT32:
		bldr.(*NumericBuilder[int32]).Append(int32(sv))
	case quiver.INT64:
		bldr.(*NumericBuilder[int64]).Append(sv)
	case quiver.UINT8:
		bldr.(*NumericBuilder[uint8]).Append(uint8(sv))
	case quiver.UINT16:
		bldr.(*NumericBuilder[uint16]).Append(uint16(sv))
	case quiver.UINT32:
		bldr.(*NumericBuilder[uint32]).Append(uint32(sv))
	case quiver.UINT64:
		bldr.(*NumericBuilder[uint64]).Append(uint64(sv))
	default:
		return fmt.Errorf("%w: numeric cast to %s", quiver.ErrTypeMismatch, to)
	}
	return nil
}

func toFloat(s int64, u uint64, f float64, kind numKind) float64 {
	switch kind {
	case numSigned:
		return float64(s)
	case numUnsigned:
		return float64(u)
	default:
		return f
	}
}

var intRanges = map[quiver.Type][2]int64{
	quiver.INT8:   {math.MinInt8, math.MaxInt8},
	quiver.INT16:  {math.MinInt16, math.MaxInt16},
	quiver.INT32:  {math.MinInt32, math.MaxInt32},
	quiver.INT64:  {math.MinInt64, math.MaxInt64},
	quiver.UINT8:  {0, math.MaxUint8},
	quiver.UINT16: {0, math.MaxUint16},
	quiver.UINT32: {0, math.MaxUint32},
	quiver.UINT64: {0, math.MaxInt64}, // values above MaxInt64 handled separately
}

// toSigned converts the source value to an int64 checked against the
// target's range. uint64 targets accept the full uint64 range of an
// unsigned source.
func toSigned(s int64, u uint64, f float64, kind numKind, to quiver.DataType) (int64, error) {
	switch kind {
	case numUnsigned:
		if to.ID() == quiver.UINT64 {
			return int64(u), nil // bit-preserving, re-widened by the caller
		}
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d out of range for %s", quiver.ErrOverflow, u, to)
		}
		s = int64(u)
	case numFloat:
		if f != math.Trunc(f) || math.IsNaN(f) || math.IsInf(f, 0) ||
			f < -9.223372036854776e18 || f >= 9.223372036854776e18 {
			return 0, fmt.Errorf("%w: %v not representable as %s", quiver.ErrOverflow, f, to)
		}
		s = int64(f)
	}
	r := intRanges[to.ID()]
	if s < r[0] || s > r[1] {
		return 0, fmt.Errorf("%w: %d out of range for %s", quiver.ErrOverflow, s, to)
	}
	return s, nil
}

// castTimestamp rescales timestamp values between time units. Widening
// (seconds to nanoseconds) multiplies and fails on overflow; narrowing
// truncates toward zero.
func castTimestamp(arr *Numeric[quiver.Timestamp], to *quiver.TimestampType) (Array, error) {
	from := arr.DataType().(*quiver.TimestampType)
	bldr := NewNumericBuilder[quiver.Timestamp](to)
	// Multiplier is nanoseconds per unit, so a coarser source unit has
	// the larger multiplier and widening multiplies by the ratio.
	factorUp := from.Unit.Multiplier() / to.Unit.Multiplier()
	factorDown := to.Unit.Multiplier() / from.Unit.Multiplier()
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			bldr.AppendNull()
			continue
		}
		v := int64(arr.Value(i))
		switch {
		case factorUp > 1:
			scaled, ok := overflow.Mul64(v, factorUp)
			if !ok {
				return nil, fmt.Errorf("%w: timestamp %d does not fit in %s", quiver.ErrOverflow, v, to.Unit)
			}
			v = scaled
		case factorDown > 1:
			v /= factorDown
		}
		bldr.Append(quiver.Timestamp(v))
	}
	return bldr.NewArray(), nil
}

// stringToBinary and binaryToString reinterpret the same buffers under
// the sibling type; both layouts are offsets plus a byte buffer.

func stringToBinary(arr *String) *Binary {
	d := arr.Data()
	nd := NewData(quiver.BinaryTypes.Binary, d.length, d.buffers, d.childData, d.nulls, d.offset)
	return MakeFromData(nd).(*Binary)
}

func binaryToString(arr *Binary) *String {
	d := arr.Data()
	nd := NewData(quiver.BinaryTypes.String, d.length, d.buffers, d.childData, d.nulls, d.offset)
	return MakeFromData(nd).(*String)
}
