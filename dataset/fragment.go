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

package dataset

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
)

// Fragment is one scannable unit of a dataset: typically one file plus
// the partition values implied by its path. Fragments are metadata
// only; no data is read until OpenReader.
type Fragment interface {
	// Schema returns the fragment's physical schema, excluding
	// partition fields. For files it is resolved on first call and
	// cached.
	Schema() (*quiver.Schema, error)

	// PartitionValues returns the partition key values for every row of
	// this fragment, in directory depth order.
	PartitionValues() []PartitionValue

	// OpenReader starts streaming the fragment's records.
	OpenReader() (FragmentReader, error)

	String() string
}

// FileFragment is a fragment backed by one file.
type FileFragment struct {
	fs        afero.Fs
	path      string
	format    FileFormat
	partition []PartitionValue

	schema func() (*quiver.Schema, error)
}

// NewFileFragment returns a fragment for the file at path. The physical
// schema is resolved lazily by inspecting the file, once, on first use;
// concurrent callers share the single inspection.
func NewFileFragment(fs afero.Fs, path string, format FileFormat, partition []PartitionValue) *FileFragment {
	f := &FileFragment{fs: fs, path: path, format: format, partition: partition}
	f.schema = sync.OnceValues(func() (*quiver.Schema, error) {
		s, err := format.Inspect(fs, path)
		if err != nil {
			return nil, fmt.Errorf("%w: inspecting %s: %v", quiver.ErrIO, path, err)
		}
		return s, nil
	})
	return f
}

func (f *FileFragment) Path() string                      { return f.path }
func (f *FileFragment) Schema() (*quiver.Schema, error)   { return f.schema() }
func (f *FileFragment) PartitionValues() []PartitionValue { return f.partition }

func (f *FileFragment) OpenReader() (FragmentReader, error) {
	r, err := f.format.OpenReader(f.fs, f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", quiver.ErrIO, f.path, err)
	}
	return r, nil
}

func (f *FileFragment) String() string {
	return fmt.Sprintf("%s fragment %s", f.format.Name(), f.path)
}

// InMemoryFragment is a fragment over records already in memory.
type InMemoryFragment struct {
	schema    *quiver.Schema
	recs      []*array.Record
	partition []PartitionValue
}

// NewInMemoryFragment wraps records sharing schema as a fragment.
func NewInMemoryFragment(schema *quiver.Schema, recs []*array.Record, partition []PartitionValue) *InMemoryFragment {
	return &InMemoryFragment{schema: schema, recs: recs, partition: partition}
}

func (f *InMemoryFragment) Schema() (*quiver.Schema, error)   { return f.schema, nil }
func (f *InMemoryFragment) PartitionValues() []PartitionValue { return f.partition }

func (f *InMemoryFragment) OpenReader() (FragmentReader, error) {
	return &recordSliceReader{schema: f.schema, recs: f.recs}, nil
}

func (f *InMemoryFragment) String() string {
	return fmt.Sprintf("in-memory fragment (%d batches)", len(f.recs))
}

type recordSliceReader struct {
	schema *quiver.Schema
	recs   []*array.Record
	cur    *array.Record
}

func (r *recordSliceReader) Schema() *quiver.Schema { return r.schema }
func (r *recordSliceReader) Record() *array.Record  { return r.cur }
func (r *recordSliceReader) Err() error             { return nil }
func (r *recordSliceReader) Close() error           { return nil }

func (r *recordSliceReader) Next() bool {
	if len(r.recs) == 0 {
		return false
	}
	r.cur, r.recs = r.recs[0], r.recs[1:]
	return true
}
