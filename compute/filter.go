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

package compute

import (
	"fmt"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
)

// Filter evaluates a boolean expression against the record and returns
// a new record holding only the rows where the expression is true. Rows
// where the expression is null are dropped.
func Filter(rec *array.Record, expr Expression) (*array.Record, error) {
	mask, err := Evaluate(expr, rec)
	if err != nil {
		return nil, err
	}
	bm, ok := mask.(*array.Boolean)
	if !ok {
		return nil, fmt.Errorf("%w: filter expression yields %s, want bool",
			quiver.ErrTypeMismatch, mask.DataType())
	}
	return FilterRecord(rec, bm)
}

// FilterRecord keeps the rows of rec where mask is true. The mask must
// have one element per row; null mask elements drop the row.
func FilterRecord(rec *array.Record, mask *array.Boolean) (*array.Record, error) {
	if mask.Len() != rec.NumRows() {
		return nil, fmt.Errorf("%w: mask of length %d for record with %d rows",
			quiver.ErrRange, mask.Len(), rec.NumRows())
	}
	bldrs := make([]array.Builder, rec.NumCols())
	for i := 0; i < rec.NumCols(); i++ {
		b, err := array.NewBuilder(rec.Schema().Field(i).Type)
		if err != nil {
			return nil, err
		}
		bldrs[i] = b
	}
	rows := 0
	for r := 0; r < rec.NumRows(); r++ {
		if mask.IsNull(r) || !mask.Value(r) {
			continue
		}
		for c := range bldrs {
			if err := array.AppendElement(bldrs[c], rec.Column(c), r); err != nil {
				return nil, err
			}
		}
		rows++
	}
	cols := make([]array.Array, len(bldrs))
	for i, b := range bldrs {
		cols[i] = b.NewArray()
	}
	return array.NewRecord(rec.Schema(), cols, rows)
}

// Project evaluates one expression per output column against the record
// and assembles the results into a new record with the given names.
func Project(rec *array.Record, names []string, exprs []Expression) (*array.Record, error) {
	if len(names) != len(exprs) {
		return nil, fmt.Errorf("%w: %d names for %d expressions",
			quiver.ErrInvalid, len(names), len(exprs))
	}
	cols := make([]array.Array, len(exprs))
	for i, e := range exprs {
		arr, err := Evaluate(e, rec)
		if err != nil {
			return nil, err
		}
		cols[i] = arr
	}
	return array.NewRecordFromColumns(names, cols)
}
