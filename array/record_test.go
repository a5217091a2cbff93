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

func sampleRecord(t *testing.T) *array.Record {
	t.Helper()
	ids, err := array.FromSlice([]int64{1, 2, 3})
	require.NoError(t, err)
	names, err := array.FromSlice([]string{"a", "b", "c"})
	require.NoError(t, err)
	rec, err := array.NewRecordFromColumns([]string{"id", "name"}, []array.Array{ids, names})
	require.NoError(t, err)
	return rec
}

func TestNewRecordValidation(t *testing.T) {
	schema := quiver.NewSchema([]quiver.Field{
		{Name: "id", Type: quiver.PrimitiveTypes.Int64},
		{Name: "name", Type: quiver.BinaryTypes.String},
	}, nil)
	ids, err := array.FromSlice([]int64{1, 2, 3})
	require.NoError(t, err)
	names, err := array.FromSlice([]string{"a", "b"})
	require.NoError(t, err)

	// mismatched column lengths
	_, err = array.NewRecord(schema, []array.Array{ids, names}, -1)
	assert.ErrorIs(t, err, quiver.ErrSchemaMismatch)

	// wrong column count
	_, err = array.NewRecord(schema, []array.Array{ids}, -1)
	assert.ErrorIs(t, err, quiver.ErrSchemaMismatch)

	// wrong type
	_, err = array.NewRecord(schema, []array.Array{names, names}, -1)
	assert.ErrorIs(t, err, quiver.ErrSchemaMismatch)
}

func TestRecordColumnByName(t *testing.T) {
	rec := sampleRecord(t)

	col, err := rec.ColumnByName("name")
	require.NoError(t, err)
	assert.Equal(t, "b", col.(*array.String).Value(1))

	_, err = rec.ColumnByName("missing")
	assert.ErrorIs(t, err, quiver.ErrKey)

	// ambiguous name
	dup, err := array.NewRecordFromColumns([]string{"x", "x"},
		[]array.Array{rec.Column(0), rec.Column(0)})
	require.NoError(t, err)
	_, err = dup.ColumnByName("x")
	assert.ErrorIs(t, err, quiver.ErrKey)
}

func TestRecordNewSlice(t *testing.T) {
	rec := sampleRecord(t)

	s, err := rec.NewSlice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumRows())
	assert.Equal(t, int64(2), s.Column(0).(*array.Numeric[int64]).Value(0))
	assert.Equal(t, "c", s.Column(1).(*array.String).Value(1))

	_, err = rec.NewSlice(0, 4)
	assert.ErrorIs(t, err, quiver.ErrRange)
}

func TestRecordSelectColumns(t *testing.T) {
	rec := sampleRecord(t)

	s, err := rec.SelectColumns([]int{1})
	require.NoError(t, err)
	assert.Equal(t, 1, s.NumCols())
	assert.Equal(t, "name", s.Schema().Field(0).Name)
	assert.Equal(t, 3, s.NumRows())

	_, err = rec.SelectColumns([]int{2})
	assert.ErrorIs(t, err, quiver.ErrRange)
}
