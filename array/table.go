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

// Table is a logical table whose columns are chunked arrays. Unlike a
// Record its columns may be chunked differently from one another; only
// the total lengths must agree. Tables are immutable and compose without
// copying values.
type Table struct {
	schema *quiver.Schema
	cols   []*Chunked
	rows   int
}

// NewTable validates and builds a table. Pass rows < 0 to infer the row
// count from the columns (at least one column is then required).
func NewTable(schema *quiver.Schema, cols []*Chunked, rows int) (*Table, error) {
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
	return &Table{schema: schema, cols: cols, rows: rows}, nil
}

// NewTableFromRecords converts a sequence of records sharing schema into
// a table; each record contributes one chunk per column. No values are
// copied.
func NewTableFromRecords(schema *quiver.Schema, recs []*Record) (*Table, error) {
	cols := make([]*Chunked, schema.NumFields())
	chunks := make([][]Array, schema.NumFields())
	rows := 0
	for _, rec := range recs {
		if !rec.Schema().Equal(schema) {
			return nil, fmt.Errorf("%w: record schema %v differs from table schema %v",
				quiver.ErrSchemaMismatch, rec.Schema(), schema)
		}
		for i := 0; i < rec.NumCols(); i++ {
			chunks[i] = append(chunks[i], rec.Column(i))
		}
		rows += rec.NumRows()
	}
	for i := range cols {
		c, err := NewChunked(schema.Field(i).Type, chunks[i])
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return &Table{schema: schema, cols: cols, rows: rows}, nil
}

func (t *Table) Schema() *quiver.Schema { return t.schema }
func (t *Table) NumRows() int           { return t.rows }
func (t *Table) NumCols() int           { return len(t.cols) }
func (t *Table) Column(i int) *Chunked  { return t.cols[i] }

// ColumnByName returns the column for the uniquely named field. A
// missing or ambiguous name is a key error.
func (t *Table) ColumnByName(name string) (*Chunked, error) {
	idx := t.schema.FieldIndices(name)
	switch len(idx) {
	case 0:
		return nil, fmt.Errorf("%w: no column named %q", quiver.ErrKey, name)
	case 1:
		return t.cols[idx[0]], nil
	default:
		return nil, fmt.Errorf("%w: %d columns named %q", quiver.ErrKey, len(idx), name)
	}
}

// NewSlice returns a zero-copy view of rows [i, j).
func (t *Table) NewSlice(i, j int) (*Table, error) {
	if i < 0 || j < i || j > t.rows {
		return nil, fmt.Errorf("%w: slice [%d, %d) of table with %d rows",
			quiver.ErrRange, i, j, t.rows)
	}
	cols := make([]*Chunked, len(t.cols))
	for k, col := range t.cols {
		c, err := col.NewSlice(i, j)
		if err != nil {
			return nil, err
		}
		cols[k] = c
	}
	return &Table{schema: t.schema, cols: cols, rows: j - i}, nil
}

// SelectColumns returns a zero-copy view restricted to the columns at
// the given indices, in the given order.
func (t *Table) SelectColumns(indices []int) (*Table, error) {
	fields := make([]quiver.Field, len(indices))
	cols := make([]*Chunked, len(indices))
	for k, i := range indices {
		if i < 0 || i >= len(t.cols) {
			return nil, fmt.Errorf("%w: column index %d of table with %d columns",
				quiver.ErrRange, i, len(t.cols))
		}
		fields[k] = t.schema.Field(i)
		cols[k] = t.cols[i]
	}
	return &Table{schema: quiver.NewSchema(fields, nil), cols: cols, rows: t.rows}, nil
}

// concatSchema merges the schemas of tables being concatenated. Field
// names, types and order must match exactly; nullability is relaxed, a
// result field is nullable when it is nullable in any input.
func concatSchema(tables []*Table) (*quiver.Schema, error) {
	base := tables[0].Schema()
	fields := base.Fields()
	for _, t := range tables[1:] {
		s := t.Schema()
		if s.NumFields() != len(fields) {
			return nil, fmt.Errorf("%w: concatenating table with %d columns and table with %d",
				quiver.ErrSchemaMismatch, len(fields), s.NumFields())
		}
		for i := range fields {
			f := s.Field(i)
			if f.Name != fields[i].Name || !quiver.TypeEqual(f.Type, fields[i].Type) {
				return nil, fmt.Errorf("%w: field %d is %q (%s) in one table and %q (%s) in another",
					quiver.ErrSchemaMismatch, i, fields[i].Name, fields[i].Type, f.Name, f.Type)
			}
			fields[i].Nullable = fields[i].Nullable || f.Nullable
		}
	}
	meta := base.Metadata()
	return quiver.NewSchema(fields, &meta), nil
}

// ConcatTables stacks tables vertically by concatenating their chunk
// lists; no values are copied. All inputs must have the same field
// names and types in the same order. Nullability may differ, the result
// field is nullable when any input's is.
func ConcatTables(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: concatenating zero tables", quiver.ErrInvalid)
	}
	schema, err := concatSchema(tables)
	if err != nil {
		return nil, err
	}
	cols := make([]*Chunked, schema.NumFields())
	rows := 0
	for i := range cols {
		var chunks []Array
		for _, t := range tables {
			chunks = append(chunks, t.Column(i).Chunks()...)
		}
		c, err := NewChunked(schema.Field(i).Type, chunks)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	for _, t := range tables {
		rows += t.NumRows()
	}
	return &Table{schema: schema, cols: cols, rows: rows}, nil
}

func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "table:\n  %v\n  rows: %d\n", t.schema, t.rows)
	for i, col := range t.cols {
		fmt.Fprintf(&b, "  col[%d][%s]: %v\n", i, t.schema.Field(i).Name, col)
	}
	return b.String()
}

// TableReader streams a table as a sequence of records. Record
// boundaries fall on chunk boundaries and never exceed the configured
// batch size, so reading is always zero-copy.
type TableReader struct {
	tbl       *Table
	batchSize int

	cur Record
	row int
}

// NewTableReader returns a reader over tbl producing records of at most
// batchSize rows; batchSize <= 0 means no limit beyond chunk boundaries.
func NewTableReader(tbl *Table, batchSize int) *TableReader {
	return &TableReader{tbl: tbl, batchSize: batchSize}
}

func (r *TableReader) Schema() *quiver.Schema { return r.tbl.Schema() }
func (r *TableReader) Record() *Record        { return &r.cur }
func (r *TableReader) Err() error             { return nil }

// Next advances the reader to the next record, reporting whether one is
// available. The emitted record spans rows up to the nearest chunk
// boundary of any column.
func (r *TableReader) Next() bool {
	if r.row >= r.tbl.NumRows() {
		return false
	}
	n := r.tbl.NumRows() - r.row
	if r.batchSize > 0 && n > r.batchSize {
		n = r.batchSize
	}
	// shrink to the closest chunk end at or after r.row across columns
	for _, col := range r.tbl.cols {
		chunk, off := col.resolve(r.row)
		if rem := col.Chunk(chunk).Len() - off; rem < n {
			n = rem
		}
	}
	cols := make([]Array, r.tbl.NumCols())
	for i, col := range r.tbl.cols {
		chunk, off := col.resolve(r.row)
		cols[i] = mustSlice(col.Chunk(chunk), off, n)
	}
	r.cur = Record{schema: r.tbl.schema, cols: cols, rows: n}
	r.row += n
	return true
}
