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

package array_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
)

func tableOf(t *testing.T, nullable bool, values ...int64) *array.Table {
	t.Helper()
	arr, err := array.FromSlice(values)
	require.NoError(t, err)
	col, err := array.NewChunked(nil, []array.Array{arr})
	require.NoError(t, err)
	schema := quiver.NewSchema([]quiver.Field{
		{Name: "v", Type: quiver.PrimitiveTypes.Int64, Nullable: nullable},
	}, nil)
	tbl, err := array.NewTable(schema, []*array.Chunked{col}, -1)
	require.NoError(t, err)
	return tbl
}

func TestConcatTablesRowCounts(t *testing.T) {
	t1 := tableOf(t, false, 1, 2)
	t2 := tableOf(t, false, 3)
	t3 := tableOf(t, false, 4, 5, 6)

	out, err := array.ConcatTables([]*array.Table{t1, t2, t3})
	require.NoError(t, err)
	assert.Equal(t, t1.NumRows()+t2.NumRows()+t3.NumRows(), out.NumRows())

	// concat never copies values, it stacks chunks
	assert.Equal(t, 3, out.Column(0).NumChunks())
}

func TestConcatTablesAssociative(t *testing.T) {
	t1 := tableOf(t, false, 1, 2)
	t2 := tableOf(t, false, 3)
	t3 := tableOf(t, false, 4, 5)

	left12, err := array.ConcatTables([]*array.Table{t1, t2})
	require.NoError(t, err)
	leftAssoc, err := array.ConcatTables([]*array.Table{left12, t3})
	require.NoError(t, err)

	right23, err := array.ConcatTables([]*array.Table{t2, t3})
	require.NoError(t, err)
	rightAssoc, err := array.ConcatTables([]*array.Table{t1, right23})
	require.NoError(t, err)

	assert.True(t, array.TableEqual(leftAssoc, rightAssoc))
}

func TestConcatTablesNullabilityRelaxed(t *testing.T) {
	strict := tableOf(t, false, 1)
	relaxed := tableOf(t, true, 2)

	out, err := array.ConcatTables([]*array.Table{strict, relaxed})
	require.NoError(t, err)
	assert.True(t, out.Schema().Field(0).Nullable)
	assert.Equal(t, 2, out.NumRows())
}

func TestConcatTablesKeepsMetadata(t *testing.T) {
	arr, err := array.FromSlice([]int64{1})
	require.NoError(t, err)
	col, err := array.NewChunked(nil, []array.Array{arr})
	require.NoError(t, err)
	meta := quiver.NewMetadata([]string{"source"}, []string{"events"})
	schema := quiver.NewSchema([]quiver.Field{
		{Name: "v", Type: quiver.PrimitiveTypes.Int64},
	}, &meta)
	tagged, err := array.NewTable(schema, []*array.Chunked{col}, -1)
	require.NoError(t, err)

	out, err := array.ConcatTables([]*array.Table{tagged, tableOf(t, false, 2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"source"}, out.Schema().Metadata().Keys())
}

func TestConcatTablesSchemaMismatch(t *testing.T) {
	t1 := tableOf(t, false, 1)

	arr, err := array.FromSlice([]string{"x"})
	require.NoError(t, err)
	col, err := array.NewChunked(nil, []array.Array{arr})
	require.NoError(t, err)
	other, err := array.NewTable(quiver.NewSchema([]quiver.Field{
		{Name: "v", Type: quiver.BinaryTypes.String},
	}, nil), []*array.Chunked{col}, -1)
	require.NoError(t, err)

	_, err = array.ConcatTables([]*array.Table{t1, other})
	assert.ErrorIs(t, err, quiver.ErrSchemaMismatch)
}

func TestNewTableFromRecords(t *testing.T) {
	rec1 := sampleRecord(t)
	rec2 := sampleRecord(t)

	tbl, err := array.NewTableFromRecords(rec1.Schema(), []*array.Record{rec1, rec2})
	require.NoError(t, err)
	assert.Equal(t, 6, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, 2, tbl.Column(0).NumChunks())
}

func TestTableNewSliceAndSelect(t *testing.T) {
	t1 := tableOf(t, false, 1, 2)
	t2 := tableOf(t, false, 3, 4)
	tbl, err := array.ConcatTables([]*array.Table{t1, t2})
	require.NoError(t, err)

	s, err := tbl.NewSlice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumRows())
	want := tableOf(t, false, 2, 3)
	// schemas differ in nothing; contents must match across chunkings
	assert.True(t, array.ChunkedEqual(s.Column(0), want.Column(0)))

	sel, err := tbl.SelectColumns([]int{0})
	require.NoError(t, err)
	assert.Equal(t, 1, sel.NumCols())
	_, err = tbl.SelectColumns([]int{9})
	assert.ErrorIs(t, err, quiver.ErrRange)
}

func TestTableReader(t *testing.T) {
	t1 := tableOf(t, false, 1, 2, 3)
	t2 := tableOf(t, false, 4, 5)
	tbl, err := array.ConcatTables([]*array.Table{t1, t2})
	require.NoError(t, err)

	rdr := array.NewTableReader(tbl, 2)
	var sizes []int
	total := 0
	for rdr.Next() {
		rec := rdr.Record()
		sizes = append(sizes, rec.NumRows())
		total += rec.NumRows()
	}
	require.NoError(t, rdr.Err())
	assert.Equal(t, 5, total)
	// batches break at chunk boundaries and at the batch size
	assert.Equal(t, []int{2, 1, 2}, sizes)
}
