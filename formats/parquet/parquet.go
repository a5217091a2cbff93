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

// Package parquet adapts parquet files to the dataset file format
// contract, delegating encoding to parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"

	pq "github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/dataset"
)

// DefaultReadBatchSize is how many rows a reader decodes into one
// record.
const DefaultReadBatchSize = 4096

// Format reads and writes parquet files.
type Format struct {
	// ReadBatchSize caps the rows per decoded record; zero means
	// DefaultReadBatchSize.
	ReadBatchSize int
}

var _ dataset.FileFormat = Format{}

func (Format) Name() string             { return "parquet" }
func (Format) DefaultExtension() string { return ".parquet" }

func openParquet(fs afero.Fs, path string) (afero.File, *pq.File, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	pf, err := pq.OpenFile(file, stat.Size())
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("%w: opening parquet file %s: %v", quiver.ErrIO, path, err)
	}
	return file, pf, nil
}

// Inspect reads the file footer and maps the parquet schema to a
// columnar schema. Nested groups are not supported.
func (f Format) Inspect(fs afero.Fs, path string) (*quiver.Schema, error) {
	file, pf, err := openParquet(fs, path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return convertSchema(pf.Schema())
}

func convertSchema(s *pq.Schema) (*quiver.Schema, error) {
	var fields []quiver.Field
	for _, pf := range s.Fields() {
		dt, err := convertField(pf)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", pf.Name(), err)
		}
		fields = append(fields, quiver.Field{
			Name:     pf.Name(),
			Type:     dt,
			Nullable: pf.Optional(),
		})
	}
	return quiver.NewSchema(fields, nil), nil
}

func convertField(f pq.Field) (quiver.DataType, error) {
	if len(f.Fields()) > 0 || f.Type() == nil {
		return nil, fmt.Errorf("%w: nested parquet groups", quiver.ErrNotImplemented)
	}
	t := f.Type()
	switch t.Kind() {
	case pq.Boolean:
		return quiver.FixedWidthTypes.Boolean, nil
	case pq.Int32:
		return quiver.PrimitiveTypes.Int32, nil
	case pq.Int64:
		return quiver.PrimitiveTypes.Int64, nil
	case pq.Float:
		return quiver.PrimitiveTypes.Float32, nil
	case pq.Double:
		return quiver.PrimitiveTypes.Float64, nil
	case pq.ByteArray:
		if lt := t.LogicalType(); lt != nil && lt.UTF8 != nil {
			return quiver.BinaryTypes.String, nil
		}
		return quiver.BinaryTypes.Binary, nil
	case pq.FixedLenByteArray:
		return &quiver.FixedSizeBinaryType{ByteWidth: t.Length()}, nil
	default:
		return nil, fmt.Errorf("%w: parquet kind %v", quiver.ErrNotImplemented, t.Kind())
	}
}

// OpenReader opens path for streaming decoded records.
func (f Format) OpenReader(fs afero.Fs, path string) (dataset.FragmentReader, error) {
	file, pf, err := openParquet(fs, path)
	if err != nil {
		return nil, err
	}
	schema, err := convertSchema(pf.Schema())
	if err != nil {
		file.Close()
		return nil, err
	}
	batch := f.ReadBatchSize
	if batch <= 0 {
		batch = DefaultReadBatchSize
	}
	return &reader{
		schema: schema,
		file:   file,
		rows:   pq.NewReader(pf),
		batch:  batch,
	}, nil
}

type reader struct {
	schema *quiver.Schema
	file   afero.File
	rows   *pq.Reader
	batch  int

	cur    *array.Record
	err    error
	closed bool
	done   bool
}

func (r *reader) Schema() *quiver.Schema { return r.schema }
func (r *reader) Record() *array.Record  { return r.cur }
func (r *reader) Err() error             { return r.err }

func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.rows.Close()
	return r.file.Close()
}

func (r *reader) Next() bool {
	if r.err != nil || r.closed || r.done {
		return false
	}
	bldrs := make([]array.Builder, r.schema.NumFields())
	for i := range bldrs {
		b, err := array.NewBuilder(r.schema.Field(i).Type)
		if err != nil {
			r.err = err
			return false
		}
		bldrs[i] = b
	}
	n := 0
	for n < r.batch {
		row := make(map[string]interface{})
		if err := r.rows.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				r.done = true
				break
			}
			r.err = fmt.Errorf("%w: reading parquet row: %v", quiver.ErrIO, err)
			return false
		}
		for i := range bldrs {
			if err := array.AppendValue(bldrs[i], row[r.schema.Field(i).Name]); err != nil {
				r.err = err
				return false
			}
		}
		n++
	}
	if n == 0 {
		return false
	}
	cols := make([]array.Array, len(bldrs))
	for i, b := range bldrs {
		cols[i] = b.NewArray()
	}
	rec, err := array.NewRecord(r.schema, cols, n)
	if err != nil {
		r.err = err
		return false
	}
	r.cur = rec
	return true
}

// Write encodes all records from rdr into a new parquet file at path.
func (f Format) Write(fs afero.Fs, path string, rdr array.RecordReader) error {
	node, err := buildWriteSchema(rdr.Schema())
	if err != nil {
		return err
	}
	file, err := fs.Create(path)
	if err != nil {
		return err
	}
	w := pq.NewGenericWriter[map[string]interface{}](file, node)
	for rdr.Next() {
		rec := rdr.Record()
		rows := make([]map[string]interface{}, rec.NumRows())
		for i := range rows {
			row := make(map[string]interface{}, rec.NumCols())
			for c := 0; c < rec.NumCols(); c++ {
				if v := array.GoValue(rec.Column(c), i); v != nil {
					row[rec.ColumnName(c)] = v
				}
			}
			rows[i] = row
		}
		if _, err := w.Write(rows); err != nil {
			file.Close()
			return fmt.Errorf("%w: writing parquet rows: %v", quiver.ErrIO, err)
		}
	}
	if err := rdr.Err(); err != nil {
		file.Close()
		return err
	}
	if err := w.Close(); err != nil {
		file.Close()
		return fmt.Errorf("%w: closing parquet writer: %v", quiver.ErrIO, err)
	}
	return file.Close()
}

func buildWriteSchema(s *quiver.Schema) (*pq.Schema, error) {
	group := pq.Group{}
	for _, f := range s.Fields() {
		node, err := writeNode(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if f.Nullable {
			node = pq.Optional(node)
		}
		group[f.Name] = node
	}
	return pq.NewSchema("", group), nil
}

func writeNode(dt quiver.DataType) (pq.Node, error) {
	switch dt.ID() {
	case quiver.BOOL:
		return pq.Leaf(pq.BooleanType), nil
	case quiver.INT32:
		return pq.Int(32), nil
	case quiver.INT64:
		return pq.Int(64), nil
	case quiver.FLOAT32:
		return pq.Leaf(pq.FloatType), nil
	case quiver.FLOAT64:
		return pq.Leaf(pq.DoubleType), nil
	case quiver.STRING:
		return pq.String(), nil
	case quiver.BINARY:
		return pq.Leaf(pq.ByteArrayType), nil
	default:
		return nil, fmt.Errorf("%w: writing %s to parquet", quiver.ErrNotImplemented, dt)
	}
}
