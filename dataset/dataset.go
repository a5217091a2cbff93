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

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
)

// Dataset is an immutable collection of fragments under one logical
// schema: the on-disk analogue of a Table. Datasets hold metadata only
// and are safe for concurrent use; build a new one to pick up new
// files.
type Dataset interface {
	// Schema is the unified logical schema, including partition fields.
	Schema() *quiver.Schema

	// Fragments returns the dataset's fragments. The returned slice
	// must not be modified.
	Fragments() []Fragment

	String() string
}

// FileSystemDataset is a dataset of file fragments discovered under a
// directory root.
type FileSystemDataset struct {
	schema *quiver.Schema
	frags  []Fragment
	root   string
	format FileFormat
}

func (d *FileSystemDataset) Schema() *quiver.Schema { return d.schema }
func (d *FileSystemDataset) Fragments() []Fragment  { return d.frags }

func (d *FileSystemDataset) String() string {
	return fmt.Sprintf("%s dataset at %s (%d fragments)", d.format.Name(), d.root, len(d.frags))
}

// InMemoryDataset is a dataset over record batches already in memory,
// exposed as a single fragment.
type InMemoryDataset struct {
	schema *quiver.Schema
	frags  []Fragment
}

// NewInMemoryDataset wraps records sharing one schema. Records with a
// different schema are rejected.
func NewInMemoryDataset(schema *quiver.Schema, recs []*array.Record) (*InMemoryDataset, error) {
	for _, rec := range recs {
		if !rec.Schema().Equal(schema) {
			return nil, fmt.Errorf("%w: record schema %v differs from dataset schema %v",
				quiver.ErrSchemaMismatch, rec.Schema(), schema)
		}
	}
	return &InMemoryDataset{
		schema: schema,
		frags:  []Fragment{NewInMemoryFragment(schema, recs, nil)},
	}, nil
}

// NewDatasetFromTable exposes a table as an in-memory dataset, one
// record per batch of at most batchSize rows.
func NewDatasetFromTable(tbl *array.Table, batchSize int) (*InMemoryDataset, error) {
	var recs []*array.Record
	rdr := array.NewTableReader(tbl, batchSize)
	for rdr.Next() {
		rec := *rdr.Record()
		recs = append(recs, &rec)
	}
	return NewInMemoryDataset(tbl.Schema(), recs)
}

func (d *InMemoryDataset) Schema() *quiver.Schema { return d.schema }
func (d *InMemoryDataset) Fragments() []Fragment  { return d.frags }

func (d *InMemoryDataset) String() string {
	return fmt.Sprintf("in-memory dataset (%d fragments)", len(d.frags))
}
