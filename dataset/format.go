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

// Package dataset provides lazy scanning over collections of data
// fragments: files discovered under a Hive-partitioned directory tree,
// or record batches already in memory. A Dataset holds metadata only;
// no file data is read until a Scanner pulls batches from it.
package dataset

import (
	"io"

	"github.com/spf13/afero"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
)

// FragmentReader streams the records of one fragment. Close releases
// the underlying file handle and is safe to call more than once.
type FragmentReader interface {
	array.RecordReader
	io.Closer
}

// FileFormat is the codec seam between the dataset layer and concrete
// file encodings. The scanner depends only on this read/write-batches
// contract, never on encoding details.
type FileFormat interface {
	// Name identifies the format in logs and errors.
	Name() string

	// DefaultExtension is the file name suffix (with leading dot) that
	// discovery matches against, e.g. ".parquet".
	DefaultExtension() string

	// Inspect reads just enough of the file to produce its physical
	// schema.
	Inspect(fs afero.Fs, path string) (*quiver.Schema, error)

	// OpenReader opens the file for streaming reads of its records.
	OpenReader(fs afero.Fs, path string) (FragmentReader, error)

	// Write encodes all records from r into a new file at path,
	// replacing any existing file.
	Write(fs afero.Fs, path string, r array.RecordReader) error
}
