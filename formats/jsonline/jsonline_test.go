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

package jsonline_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/formats/jsonline"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestInspect(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "data.jsonl", `{"value": 1, "name": "a", "score": 1.5}
{"value": 2, "name": "b", "score": 2.5}
`)

	schema, err := jsonline.Format{}.Inspect(fs, "data.jsonl")
	require.NoError(t, err)
	require.Equal(t, 3, schema.NumFields())
	// fields come out in sorted key order
	assert.Equal(t, "name", schema.Field(0).Name)
	assert.True(t, quiver.TypeEqual(quiver.BinaryTypes.String, schema.Field(0).Type))
	assert.Equal(t, "score", schema.Field(1).Name)
	assert.True(t, quiver.TypeEqual(quiver.PrimitiveTypes.Float64, schema.Field(1).Type))
	assert.Equal(t, "value", schema.Field(2).Name)
	assert.True(t, quiver.TypeEqual(quiver.PrimitiveTypes.Int64, schema.Field(2).Type))
}

func TestInspectEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "empty.jsonl", "")

	_, err := jsonline.Format{}.Inspect(fs, "empty.jsonl")
	assert.ErrorIs(t, err, quiver.ErrInvalid)
}

func TestReadValuesAndNulls(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "data.jsonl", `{"value": 1, "name": "a"}
{"value": null, "name": "b"}
{"value": 3}
`)

	rdr, err := jsonline.Format{}.OpenReader(fs, "data.jsonl")
	require.NoError(t, err)
	defer rdr.Close()

	require.True(t, rdr.Next())
	rec := rdr.Record()
	require.NoError(t, rdr.Err())
	assert.Equal(t, 3, rec.NumRows())

	values, err := rec.ColumnByName("value")
	require.NoError(t, err)
	assert.Equal(t, int64(1), values.(*array.Numeric[int64]).Value(0))
	assert.True(t, values.IsNull(1))
	assert.Equal(t, int64(3), values.(*array.Numeric[int64]).Value(2))

	names, err := rec.ColumnByName("name")
	require.NoError(t, err)
	assert.True(t, names.IsNull(2))

	assert.False(t, rdr.Next())
	require.NoError(t, rdr.Err())
}

func TestReadBatching(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "data.jsonl", `{"v": 1}
{"v": 2}
{"v": 3}
`)

	rdr, err := jsonline.Format{ReadBatchSize: 2}.OpenReader(fs, "data.jsonl")
	require.NoError(t, err)
	defer rdr.Close()

	require.True(t, rdr.Next())
	assert.Equal(t, 2, rdr.Record().NumRows())
	require.True(t, rdr.Next())
	assert.Equal(t, 1, rdr.Record().NumRows())
	assert.False(t, rdr.Next())
	require.NoError(t, rdr.Err())
}

func TestWriteReadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	values, err := array.FromSliceWithType(quiver.PrimitiveTypes.Int64,
		[]interface{}{int64(1), nil, int64(3)})
	require.NoError(t, err)
	names, err := array.FromSlice([]string{"a", "b", "c"})
	require.NoError(t, err)
	rec, err := array.NewRecordFromColumns([]string{"value", "name"}, []array.Array{values, names})
	require.NoError(t, err)
	tbl, err := array.NewTableFromRecords(rec.Schema(), []*array.Record{rec})
	require.NoError(t, err)

	f := jsonline.Format{}
	require.NoError(t, f.Write(fs, "out.jsonl", array.NewTableReader(tbl, 2)))

	rdr, err := f.OpenReader(fs, "out.jsonl")
	require.NoError(t, err)
	defer rdr.Close()

	var rows int
	for rdr.Next() {
		rows += rdr.Record().NumRows()
	}
	require.NoError(t, rdr.Err())
	assert.Equal(t, 3, rows)
}
