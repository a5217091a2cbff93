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
	"strings"

	"github.com/quiverdata/quiver"
)

// Record is a fixed-length, in-memory table: a schema plus one array per
// field, all of equal length. Records are immutable and cannot be
// concatenated with one another; concatenation is a Table operation so
// that it never has to copy values.
type Record struct {
	schema *quiver.Schema
	cols   []Array
	rows   int
}

// NewRecord validates and builds a record. Pass rows < 0 to infer the
// row count from the columns (at least one column is then required).
func NewRecord(schema *quiver.Schema, cols []Array, rows int) (*Record, error) {
	if schema.NumFields() != len(cols) {
		return nil, fmt.Errorf("%w: schema has %d fields, got %d columns",
			quiver.ErrSchemaMismatch, schema.NumFields(), len(cols))
	}
	if rows < 0 {
		if len(cols) == 0 {
			return nil, fmt.Errorf("%w: cannot infer row count without columns", quiver.ErrSchemaMismatch)
		}
		rows = cols[0].Len()
	}
	for i, col := range cols {
		f := schema.Field(i)
		if !quiver.TypeEqual(col.DataType(), f.Type) {
			return nil, fmt.Errorf("%w: column %q has type %s, schema wants %s",
				quiver.ErrSchemaMismatch, f.Name, col.DataType(), f.Type)
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has length %d, want %d",
				quiver.ErrSchemaMismatch, f.Name, col.Len(), rows)
		}
	}
	return &Record{schema: schema, cols: cols, rows: rows}, nil
}

// NewRecordFromColumns builds a record from parallel name and column
// slices, inferring a schema with all fields nullable.
func NewRecordFromColumns(names []string, cols []Array) (*Record, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns",
			quiver.ErrSchemaMismatch, len(names), len(cols))
	}
	fields := make([]quiver.Field, len(cols))
	for i, col := range cols {
		fields[i] = quiver.Field{Name: names[i], Type: col.DataType(), Nullable: true}
	}
	return NewRecord(quiver.NewSchema(fields, nil), cols, -1)
}

func (r *Record) Schema() *quiver.Schema  { return r.schema }
func (r *Record) NumRows() int            { return r.rows }
func (r *Record) NumCols() int            { return len(r.cols) }
func (r *Record) Column(i int) Array      { return r.cols[i] }
func (r *Record) ColumnName(i int) string { return r.schema.Field(i).Name }

// Columns returns a copy of the column list.
func (r *Record) Columns() []Array {
	return append([]Array(nil), r.cols...)
}

// ColumnByName returns the column for the uniquely named field name. A
// missing or ambiguous name is a key error.
func (r *Record) ColumnByName(name string) (Array, error) {
	idx := r.schema.FieldIndices(name)
	switch len(idx) {
	case 0:
		return nil, fmt.Errorf("%w: no column named %q", quiver.ErrKey, name)
	case 1:
		return r.cols[idx[0]], nil
	default:
		return nil, fmt.Errorf("%w: %d columns named %q", quiver.ErrKey, len(idx), name)
	}
}

// NewSlice returns a zero-copy view of rows [i, j).
func (r *Record) NewSlice(i, j int) (*Record, error) {
	if i < 0 || j < i || j > r.rows {
		return nil, fmt.Errorf("%w: slice [%d, %d) of record with %d rows",
			quiver.ErrRange, i, j, r.rows)
	}
	cols := make([]Array, len(r.cols))
	for k, col := range r.cols {
		cols[k] = mustSlice(col, i, j-i)
	}
	return &Record{schema: r.schema, cols: cols, rows: j - i}, nil
}

// SelectColumns returns a zero-copy view restricted to the columns at
// the given indices, in the given order.
func (r *Record) SelectColumns(indices []int) (*Record, error) {
	fields := make([]quiver.Field, len(indices))
	cols := make([]Array, len(indices))
	for k, i := range indices {
		if i < 0 || i >= len(r.cols) {
			return nil, fmt.Errorf("%w: column index %d of record with %d columns",
				quiver.ErrRange, i, len(r.cols))
		}
		fields[k] = r.schema.Field(i)
		cols[k] = r.cols[i]
	}
	return &Record{schema: quiver.NewSchema(fields, nil), cols: cols, rows: r.rows}, nil
}

func (r *Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "record:\n  %v\n  rows: %d\n", r.schema, r.rows)
	for i, col := range r.cols {
		fmt.Fprintf(&b, "  col[%d][%s]: %v\n", i, r.schema.Field(i).Name, col)
	}
	return b.String()
}

// RecordReader is a pull-based stream of records sharing one schema.
// After Next returns false, Err reports the error that ended the stream,
// if any.
type RecordReader interface {
	Schema() *quiver.Schema
	Next() bool
	Record() *Record
	Err() error
}
