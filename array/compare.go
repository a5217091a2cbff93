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
	"bytes"
	"fmt"

	"github.com/quiverdata/quiver"
)

// Equal reports deep value equality of two arrays: same type, same
// length, nulls in the same places and equal values. Internal buffer
// layout (offsets, sharing) never affects the result.
func Equal(left, right Array) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case !quiver.TypeEqual(left.DataType(), right.DataType()):
		return false
	case left.Len() != right.Len():
		return false
	case left.NullN() != right.NullN():
		return false
	}
	for i := 0; i < left.Len(); i++ {
		if left.IsNull(i) != right.IsNull(i) {
			return false
		}
		if left.IsNull(i) {
			continue
		}
		if !elementEqual(left, i, right, i) {
			return false
		}
	}
	return true
}

func numericEqual[T numericValue](l Array, li int, r Array, ri int) bool {
	return l.(*Numeric[T]).Value(li) == r.(*Numeric[T]).Value(ri)
}

// elementEqual compares one element of two arrays of equal data type;
// both elements must be valid.
func elementEqual(l Array, li int, r Array, ri int) bool {
	switch la := l.(type) {
	case *Null:
		return true
	case *Boolean:
		return la.Value(li) == r.(*Boolean).Value(ri)
	case *Numeric[int8]:
		return numericEqual[int8](l, li, r, ri)
	case *Numeric[int16]:
		return numericEqual[int16](l, li, r, ri)
	case *Numeric[int32]:
		return numericEqual[int32](l, li, r, ri)
	case *Numeric[int64]:
		return numericEqual[int64](l, li, r, ri)
	case *Numeric[uint8]:
		return numericEqual[uint8](l, li, r, ri)
	case *Numeric[uint16]:
		return numericEqual[uint16](l, li, r, ri)
	case *Numeric[uint32]:
		return numericEqual[uint32](l, li, r, ri)
	case *Numeric[uint64]:
		return numericEqual[uint64](l, li, r, ri)
	case *Numeric[float32]:
		return numericEqual[float32](l, li, r, ri)
	case *Numeric[float64]:
		return numericEqual[float64](l, li, r, ri)
	case *Numeric[quiver.Date32]:
		return numericEqual[quiver.Date32](l, li, r, ri)
	case *Numeric[quiver.Date64]:
		return numericEqual[quiver.Date64](l, li, r, ri)
	case *Numeric[quiver.Timestamp]:
		return numericEqual[quiver.Timestamp](l, li, r, ri)
	case *Numeric[quiver.Time32]:
		return numericEqual[quiver.Time32](l, li, r, ri)
	case *Numeric[quiver.Time64]:
		return numericEqual[quiver.Time64](l, li, r, ri)
	case *String:
		return la.Value(li) == r.(*String).Value(ri)
	case *Binary:
		return bytes.Equal(la.Value(li), r.(*Binary).Value(ri))
	case *FixedSizeBinary:
		return bytes.Equal(la.Value(li), r.(*FixedSizeBinary).Value(ri))
	case *Decimal128:
		return la.Value(li) == r.(*Decimal128).Value(ri)
	case *List:
		return Equal(la.Value(li), r.(*List).Value(ri))
	case *Struct:
		ra := r.(*Struct)
		for f := 0; f < la.NumField(); f++ {
			lf, rf := la.Field(f), ra.Field(f)
			if lf.IsNull(li) != rf.IsNull(ri) {
				return false
			}
			if lf.IsNull(li) {
				continue
			}
			if !elementEqual(lf, li, rf, ri) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Errorf("array: unknown array type %T", l))
	}
}

// ChunkedEqual reports equality of the flattened logical contents of two
// chunked arrays. Chunk boundaries are an implementation detail and never
// affect the result: two chunked arrays with identical concatenated
// values are equal regardless of how they are chunked.
func ChunkedEqual(left, right *Chunked) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case !quiver.TypeEqual(left.DataType(), right.DataType()):
		return false
	case left.Len() != right.Len():
		return false
	case left.NullN() != right.NullN():
		return false
	}
	for i := 0; i < left.Len(); i++ {
		lc, lo := left.resolve(i)
		rc, ro := right.resolve(i)
		la, ra := left.Chunk(lc), right.Chunk(rc)
		if la.IsNull(lo) != ra.IsNull(ro) {
			return false
		}
		if la.IsNull(lo) {
			continue
		}
		if !elementEqual(la, lo, ra, ro) {
			return false
		}
	}
	return true
}

// RecordEqual reports equality of two records: equal schemas and equal
// columns.
func RecordEqual(left, right *Record) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case !left.Schema().Equal(right.Schema()):
		return false
	case left.NumRows() != right.NumRows():
		return false
	}
	for i := 0; i < left.NumCols(); i++ {
		if !Equal(left.Column(i), right.Column(i)) {
			return false
		}
	}
	return true
}

// TableEqual reports equality of two tables comparing flattened column
// contents; chunking differences are ignored.
func TableEqual(left, right *Table) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case !left.Schema().Equal(right.Schema()):
		return false
	case left.NumRows() != right.NumRows():
		return false
	}
	for i := 0; i < left.NumCols(); i++ {
		if !ChunkedEqual(left.Column(i), right.Column(i)) {
			return false
		}
	}
	return true
}
