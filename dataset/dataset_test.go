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

package dataset_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/compute"
	"github.com/quiverdata/quiver/dataset"
	"github.com/quiverdata/quiver/formats/jsonline"
	"github.com/quiverdata/quiver/scalar"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

// hiveFs lays out one jsonline file per subset directory, three rows
// each, values disjoint per subset.
func hiveFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "root/subset=a/part-0.jsonl", `{"value": 1}
{"value": -1}
{"value": 2}
`)
	writeFile(t, fs, "root/subset=b/part-0.jsonl", `{"value": 3}
{"value": -3}
{"value": 4}
`)
	writeFile(t, fs, "root/subset=c/part-0.jsonl", `{"value": 5}
{"value": -5}
{"value": 6}
`)
	return fs
}

func TestDiscovery(t *testing.T) {
	fs := hiveFs(t)
	writeFile(t, fs, "root/subset=a/notes.txt", "not data")

	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)

	assert.Len(t, ds.Fragments(), 3)
	require.True(t, ds.Schema().HasField("subset"))
	require.True(t, ds.Schema().HasField("value"))
	i := ds.Schema().FieldIndex("subset")
	assert.True(t, quiver.TypeEqual(quiver.BinaryTypes.String, ds.Schema().Field(i).Type))
}

func TestDiscoveryEmptyRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("root", 0o755))

	_, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	assert.ErrorIs(t, err, quiver.ErrInvalid)
}

func TestDiscoveryUnifySchemas(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "root/subset=a/part.jsonl", `{"value": 1}`+"\n")
	writeFile(t, fs, "root/subset=b/part.jsonl", `{"value": "oops"}`+"\n")

	// first fragment wins by default, so construction succeeds
	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)
	i := ds.Schema().FieldIndex("value")
	assert.True(t, quiver.TypeEqual(quiver.PrimitiveTypes.Int64, ds.Schema().Field(i).Type))

	_, err = dataset.NewFileSystemDataset(fs, "root", jsonline.Format{},
		dataset.WithUnifySchemas())
	assert.ErrorIs(t, err, quiver.ErrSchemaConflict)
}

func TestDiscoverySkipsUnreadableFragment(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "root/subset=a/part.jsonl", "{ not json\n")
	writeFile(t, fs, "root/subset=b/part.jsonl", `{"value": 7}`+"\n")

	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)
	require.Len(t, ds.Fragments(), 1)

	sc, err := dataset.NewScanner(ds)
	require.NoError(t, err)
	tbl, err := sc.ToTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())

	// with every file unreadable there is nothing to build a schema from
	badOnly := afero.NewMemMapFs()
	writeFile(t, badOnly, "root/part.jsonl", "{ not json\n")
	_, err = dataset.NewFileSystemDataset(badOnly, "root", jsonline.Format{})
	assert.ErrorIs(t, err, quiver.ErrInvalid)
}

func TestFragmentSchemaMemoized(t *testing.T) {
	fs := hiveFs(t)
	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)

	frag := ds.Fragments()[0]
	s1, err := frag.Schema()
	require.NoError(t, err)
	s2, err := frag.Schema()
	require.NoError(t, err)
	assert.Same(t, s1, s2)
}

func TestScanToTable(t *testing.T) {
	fs := hiveFs(t)
	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)

	sc, err := dataset.NewScanner(ds)
	require.NoError(t, err)
	tbl, err := sc.ToTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9, tbl.NumRows())

	subsets, err := tbl.ColumnByName("subset")
	require.NoError(t, err)
	counts := map[string]int{}
	for i := 0; i < subsets.Len(); i++ {
		s, err := scalar.GetScalarChunked(subsets, i)
		require.NoError(t, err)
		counts[s.Value().(string)]++
	}
	assert.Equal(t, map[string]int{"a": 3, "b": 3, "c": 3}, counts)
}

func TestScanFilterAndProjection(t *testing.T) {
	fs := hiveFs(t)
	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)

	sc, err := dataset.NewScanner(ds,
		dataset.WithFilter(
			compute.Greater(compute.NewFieldRef("value"), compute.NewLiteral(int64(0)))),
		dataset.WithProjection(
			[]string{"doubled", "subset"},
			[]compute.Expression{
				compute.Mul(compute.NewFieldRef("value"), compute.NewLiteral(int64(2))),
				compute.NewFieldRef("subset"),
			}),
		dataset.WithUseThreads(),
	)
	require.NoError(t, err)

	tbl, err := sc.ToTable(context.Background())
	require.NoError(t, err)

	// positive source values: 1, 2, 3, 4, 5, 6
	assert.Equal(t, 6, tbl.NumRows())

	doubled, err := tbl.ColumnByName("doubled")
	require.NoError(t, err)
	var got []int64
	for i := 0; i < doubled.Len(); i++ {
		s, err := scalar.GetScalarChunked(doubled, i)
		require.NoError(t, err)
		got = append(got, s.Value().(int64))
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, []int64{2, 4, 6, 8, 10, 12}, got)
}

func TestScanBatchSize(t *testing.T) {
	fs := hiveFs(t)
	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)

	sc, err := dataset.NewScanner(ds, dataset.WithBatchSize(2))
	require.NoError(t, err)

	rows := 0
	for msg := range sc.ScanBatches(context.Background()) {
		require.NoError(t, msg.Err)
		assert.LessOrEqual(t, msg.Record.NumRows(), 2)
		rows += msg.Record.NumRows()
	}
	assert.Equal(t, 9, rows)
}

func TestScanFailFast(t *testing.T) {
	fs := hiveFs(t)
	// unreadable as json once scanning starts
	writeFile(t, fs, "root/subset=d/part-0.jsonl", "{ not json\n")

	ds, err := dataset.NewFileSystemDataset(fs, "root", jsonline.Format{})
	require.NoError(t, err)
	sc, err := dataset.NewScanner(ds)
	require.NoError(t, err)

	_, err = sc.ToTable(context.Background())
	require.Error(t, err)
}

func TestScanInMemoryDataset(t *testing.T) {
	values, err := array.FromSlice([]int64{1, -2, 3})
	require.NoError(t, err)
	rec, err := array.NewRecordFromColumns([]string{"value"}, []array.Array{values})
	require.NoError(t, err)
	ds, err := dataset.NewInMemoryDataset(rec.Schema(), []*array.Record{rec})
	require.NoError(t, err)

	sc, err := dataset.NewScanner(ds,
		dataset.WithFilter(
			compute.Greater(compute.NewFieldRef("value"), compute.NewLiteral(int64(0)))))
	require.NoError(t, err)

	tbl, err := sc.ToTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
}

func TestScanTableMatchesDirectFilter(t *testing.T) {
	values, err := array.FromSlice([]int64{5, -5, 10, 0})
	require.NoError(t, err)
	rec, err := array.NewRecordFromColumns([]string{"value"}, []array.Array{values})
	require.NoError(t, err)
	tbl, err := array.NewTableFromRecords(rec.Schema(), []*array.Record{rec})
	require.NoError(t, err)

	expr := compute.Greater(compute.NewFieldRef("value"), compute.NewLiteral(int64(0)))
	sc, err := dataset.ScanTable(tbl, dataset.WithFilter(expr))
	require.NoError(t, err)
	scanned, err := sc.ToTable(context.Background())
	require.NoError(t, err)

	direct, err := compute.Filter(rec, expr)
	require.NoError(t, err)
	want, err := array.NewTableFromRecords(direct.Schema(), []*array.Record{direct})
	require.NoError(t, err)

	assert.Equal(t, want.NumRows(), scanned.NumRows())
	assert.True(t, array.ChunkedEqual(want.Column(0), scanned.Column(0)))
}

// countingFs tracks open handles so tests can assert they are released.
type countingFs struct {
	afero.Fs

	mu   sync.Mutex
	open int
}

func (c *countingFs) Open(name string) (afero.File, error) {
	f, err := c.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.open++
	c.mu.Unlock()
	return &countedFile{File: f, fs: c}, nil
}

func (c *countingFs) openHandles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

type countedFile struct {
	afero.File
	fs   *countingFs
	once sync.Once
}

func (f *countedFile) Close() error {
	f.once.Do(func() {
		f.fs.mu.Lock()
		f.fs.open--
		f.fs.mu.Unlock()
	})
	return f.File.Close()
}

func TestScanCancelReleasesHandles(t *testing.T) {
	cfs := &countingFs{Fs: afero.NewMemMapFs()}
	var rows string
	for i := 0; i < 200; i++ {
		rows += fmt.Sprintf(`{"value": %d}`+"\n", i)
	}
	for _, sub := range []string{"a", "b", "c"} {
		writeFile(t, cfs.Fs, "root/subset="+sub+"/part-0.jsonl", rows)
	}

	ds, err := dataset.NewFileSystemDataset(cfs, "root", jsonline.Format{})
	require.NoError(t, err)

	for cycle := 0; cycle < 5; cycle++ {
		sc, err := dataset.NewScanner(ds,
			dataset.WithBatchSize(10), dataset.WithThreads(3))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		stream := sc.ScanBatches(ctx)

		// take one batch, then walk away mid-stream
		msg, ok := <-stream
		require.True(t, ok)
		require.NoError(t, msg.Err)
		cancel()

		for range stream {
		}
		require.Eventually(t, func() bool { return cfs.openHandles() == 0 },
			time.Second, time.Millisecond, "cycle %d leaked handles", cycle)
	}
}

func TestHivePartitioning(t *testing.T) {
	p := dataset.HivePartitioning{}

	vals, err := p.Parse("year=2024/region=eu%20west/part-0.parquet")
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, "year", vals[0].Key)
	assert.Equal(t, int64(2024), vals[0].Value.Value())
	assert.Equal(t, "region", vals[1].Key)
	assert.Equal(t, "eu west", vals[1].Value.Value())

	// plain directories contribute nothing
	vals, err = p.Parse("misc/part-0.parquet")
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestHivePartitioningWithSchema(t *testing.T) {
	p := dataset.HivePartitioning{Schema: quiver.NewSchema([]quiver.Field{
		{Name: "id", Type: quiver.PrimitiveTypes.Int32},
	}, nil)}

	vals, err := p.Parse("id=7/part.jsonl")
	require.NoError(t, err)
	assert.Equal(t, int32(7), vals[0].Value.Value())

	_, err = p.Parse("id=abc/part.jsonl")
	assert.ErrorIs(t, err, quiver.ErrInvalid)
}

func TestFormatValuesRoundTrip(t *testing.T) {
	p := dataset.HivePartitioning{}
	path := p.FormatValues([]dataset.PartitionValue{
		{Key: "subset", Value: scalar.MakeScalar("a")},
		{Key: "year", Value: scalar.MakeScalar(int64(2024))},
	})
	assert.Equal(t, "subset=a/year=2024", path)

	vals, err := p.Parse(path + "/file.jsonl")
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, "a", vals[0].Value.Value())
	assert.Equal(t, int64(2024), vals[1].Value.Value())
}
