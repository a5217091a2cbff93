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

// Package jsonline implements the newline-delimited JSON file format:
// one JSON object per line, with the schema inferred from the first
// object's keys in sorted order.
package jsonline

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/dataset"
)

// DefaultReadBatchSize is how many lines a reader decodes into one
// record.
const DefaultReadBatchSize = 4096

// Format reads and writes newline-delimited JSON files.
type Format struct {
	// ReadBatchSize caps the rows per decoded record; zero means
	// DefaultReadBatchSize.
	ReadBatchSize int
}

var _ dataset.FileFormat = Format{}

func (Format) Name() string             { return "jsonline" }
func (Format) DefaultExtension() string { return ".jsonl" }

// Inspect decodes the first non-empty line and infers a schema from its
// values, fields sorted by key. Integral numbers become int64, other
// numbers float64; every field is nullable.
func (f Format) Inspect(fs afero.Fs, path string) (*quiver.Schema, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		row, err := decodeLine(line)
		if err != nil {
			return nil, err
		}
		return inferSchema(row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s is empty", quiver.ErrInvalid, path)
}

func decodeLine(line []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	var row map[string]interface{}
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("%w: decoding json line: %v", quiver.ErrInvalid, err)
	}
	return row, nil
}

func inferSchema(row map[string]interface{}) (*quiver.Schema, error) {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]quiver.Field, 0, len(keys))
	for _, k := range keys {
		dt, err := inferType(row[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		fields = append(fields, quiver.Field{Name: k, Type: dt, Nullable: true})
	}
	return quiver.NewSchema(fields, nil), nil
}

func inferType(v interface{}) (quiver.DataType, error) {
	switch val := v.(type) {
	case nil:
		return quiver.BinaryTypes.String, nil
	case bool:
		return quiver.FixedWidthTypes.Boolean, nil
	case string:
		return quiver.BinaryTypes.String, nil
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return quiver.PrimitiveTypes.Int64, nil
		}
		return quiver.PrimitiveTypes.Float64, nil
	default:
		return nil, fmt.Errorf("%w: json value of type %T", quiver.ErrNotImplemented, v)
	}
}

// OpenReader opens path for streaming decoded records.
func (f Format) OpenReader(fs afero.Fs, path string) (dataset.FragmentReader, error) {
	schema, err := f.Inspect(fs, path)
	if err != nil {
		return nil, err
	}
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	batch := f.ReadBatchSize
	if batch <= 0 {
		batch = DefaultReadBatchSize
	}
	return &reader{
		schema:  schema,
		file:    file,
		scanner: bufio.NewScanner(file),
		batch:   batch,
	}, nil
}

type reader struct {
	schema  *quiver.Schema
	file    afero.File
	scanner *bufio.Scanner
	batch   int

	cur    *array.Record
	err    error
	closed bool
}

func (r *reader) Schema() *quiver.Schema { return r.schema }
func (r *reader) Record() *array.Record  { return r.cur }
func (r *reader) Err() error             { return r.err }

func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

func (r *reader) Next() bool {
	if r.err != nil || r.closed {
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
	rows := 0
	for rows < r.batch && r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		row, err := decodeLine(line)
		if err != nil {
			r.err = err
			return false
		}
		for i := range bldrs {
			v, err := coerceValue(r.schema.Field(i).Type, row[r.schema.Field(i).Name])
			if err != nil {
				r.err = fmt.Errorf("field %q: %w", r.schema.Field(i).Name, err)
				return false
			}
			if err := array.AppendValue(bldrs[i], v); err != nil {
				r.err = err
				return false
			}
		}
		rows++
	}
	if err := r.scanner.Err(); err != nil {
		r.err = err
		return false
	}
	if rows == 0 {
		return false
	}
	cols := make([]array.Array, len(bldrs))
	for i, b := range bldrs {
		cols[i] = b.NewArray()
	}
	rec, err := array.NewRecord(r.schema, cols, rows)
	if err != nil {
		r.err = err
		return false
	}
	r.cur = rec
	return true
}

// coerceValue converts a decoded json value to the Go value the field's
// builder accepts.
func coerceValue(dt quiver.DataType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	n, isNum := v.(json.Number)
	switch dt.ID() {
	case quiver.INT64:
		if !isNum {
			return nil, fmt.Errorf("%w: %T for int64 field", quiver.ErrTypeMismatch, v)
		}
		return n.Int64()
	case quiver.FLOAT64:
		if !isNum {
			return nil, fmt.Errorf("%w: %T for float64 field", quiver.ErrTypeMismatch, v)
		}
		return n.Float64()
	case quiver.BOOL:
		if _, ok := v.(bool); !ok {
			return nil, fmt.Errorf("%w: %T for bool field", quiver.ErrTypeMismatch, v)
		}
		return v, nil
	case quiver.STRING:
		if isNum {
			return n.String(), nil
		}
		if _, ok := v.(string); !ok {
			return nil, fmt.Errorf("%w: %T for string field", quiver.ErrTypeMismatch, v)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: jsonline field of type %s", quiver.ErrNotImplemented, dt)
	}
}

// Write encodes all records from rdr as one JSON object per line,
// replacing any file at path.
func (f Format) Write(fs afero.Fs, path string, rdr array.RecordReader) error {
	file, err := fs.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for rdr.Next() {
		rec := rdr.Record()
		for i := 0; i < rec.NumRows(); i++ {
			row := make(map[string]interface{}, rec.NumCols())
			for c := 0; c < rec.NumCols(); c++ {
				row[rec.ColumnName(c)] = array.GoValue(rec.Column(c), i)
			}
			if err := enc.Encode(row); err != nil {
				file.Close()
				return err
			}
		}
	}
	if err := rdr.Err(); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
