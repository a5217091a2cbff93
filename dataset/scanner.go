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
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/compute"
	"github.com/quiverdata/quiver/scalar"
)

// DefaultBatchSize is the maximum row count of emitted records when no
// batch size is configured.
const DefaultBatchSize = 1 << 17

// RecordMessage is one item of a scan stream: a record or the error
// that ended the scan.
type RecordMessage struct {
	Record *array.Record
	Err    error
}

// RecordGenerator is a lazy stream of scan results. The channel is
// closed after the final message; at most one message carries an error
// and it is always the last.
type RecordGenerator <-chan RecordMessage

type scanConfig struct {
	filter    compute.Expression
	projNames []string
	projExprs []compute.Expression
	batchSize int
	threads   int
	logger    log.Logger
}

// ScanOption configures a Scanner.
type ScanOption func(*scanConfig)

// WithFilter keeps only rows for which the boolean expression is true.
func WithFilter(expr compute.Expression) ScanOption {
	return func(c *scanConfig) { c.filter = expr }
}

// WithProjection sets the output columns as an ordered mapping from
// name to expression. The default is an identity projection over the
// full schema.
func WithProjection(names []string, exprs []compute.Expression) ScanOption {
	return func(c *scanConfig) { c.projNames, c.projExprs = names, exprs }
}

// WithBatchSize caps the row count of emitted records.
func WithBatchSize(n int) ScanOption {
	return func(c *scanConfig) { c.batchSize = n }
}

// WithThreads sets how many fragments are scanned concurrently.
func WithThreads(n int) ScanOption {
	return func(c *scanConfig) { c.threads = n }
}

// WithUseThreads scans one fragment per CPU concurrently.
func WithUseThreads() ScanOption {
	return func(c *scanConfig) { c.threads = runtime.GOMAXPROCS(0) }
}

// WithScanLogger sets the logger for scan lifecycle diagnostics.
func WithScanLogger(l log.Logger) ScanOption {
	return func(c *scanConfig) { c.logger = l }
}

// Scanner executes a read plan (filter + projection) against a dataset,
// producing a lazy record stream. Batch order within one fragment is
// the file's physical order; order across fragments is unspecified when
// threading is enabled. A fragment failure aborts the whole scan.
type Scanner struct {
	ds  Dataset
	cfg scanConfig
}

// NewScanner builds a scanner over ds.
func NewScanner(ds Dataset, opts ...ScanOption) (*Scanner, error) {
	cfg := scanConfig{
		batchSize: DefaultBatchSize,
		threads:   1,
		logger:    log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size %d", quiver.ErrInvalid, cfg.batchSize)
	}
	if cfg.threads <= 0 {
		cfg.threads = 1
	}
	if len(cfg.projNames) != len(cfg.projExprs) {
		return nil, fmt.Errorf("%w: %d projection names for %d expressions",
			quiver.ErrInvalid, len(cfg.projNames), len(cfg.projExprs))
	}
	return &Scanner{ds: ds, cfg: cfg}, nil
}

// ScanTable scans an in-memory table with the same plan machinery used
// for datasets.
func ScanTable(tbl *array.Table, opts ...ScanOption) (*Scanner, error) {
	cfg := scanConfig{batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	ds, err := NewDatasetFromTable(tbl, cfg.batchSize)
	if err != nil {
		return nil, err
	}
	return NewScanner(ds, opts...)
}

// OutputSchema is the schema of emitted records. For a projection it is
// derived by evaluating the expressions against an empty batch.
func (s *Scanner) OutputSchema() (*quiver.Schema, error) {
	if s.cfg.projExprs == nil {
		return s.ds.Schema(), nil
	}
	empty, err := emptyRecord(s.ds.Schema())
	if err != nil {
		return nil, err
	}
	rec, err := compute.Project(empty, s.cfg.projNames, s.cfg.projExprs)
	if err != nil {
		return nil, err
	}
	return rec.Schema(), nil
}

func emptyRecord(schema *quiver.Schema) (*array.Record, error) {
	cols := make([]array.Array, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		bldr, err := array.NewBuilder(schema.Field(i).Type)
		if err != nil {
			return nil, err
		}
		cols[i] = bldr.NewArray()
	}
	return array.NewRecord(schema, cols, 0)
}

// ScanBatches starts the scan and returns its record stream. Fragments
// are processed by a bounded worker pool; cancelling ctx stops the scan
// and closes any open file handles. The stream is closed after the last
// message.
func (s *Scanner) ScanBatches(ctx context.Context) RecordGenerator {
	out := make(chan RecordMessage, s.cfg.threads)
	scanID := uuid.NewString()
	logger := log.With(s.cfg.logger, "scan_id", scanID)
	level.Debug(logger).Log("msg", "scan started",
		"fragments", len(s.ds.Fragments()), "threads", s.cfg.threads)

	go func() {
		defer close(out)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.threads)
		for _, frag := range s.ds.Fragments() {
			frag := frag
			g.Go(func() error {
				return s.scanFragment(gctx, frag, out)
			})
		}
		err := g.Wait()
		switch {
		case err == nil:
			level.Debug(logger).Log("msg", "scan finished")
		case errors.Is(err, context.Canceled):
			level.Debug(logger).Log("msg", "scan cancelled")
		default:
			level.Debug(logger).Log("msg", "scan failed", "err", err)
			select {
			case out <- RecordMessage{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return out
}

// scanFragment streams one fragment: read, align to the dataset schema
// with partition columns materialized, filter, project, re-batch, emit.
func (s *Scanner) scanFragment(ctx context.Context, frag Fragment, out chan<- RecordMessage) error {
	rdr, err := frag.OpenReader()
	if err != nil {
		return err
	}
	defer rdr.Close()

	for rdr.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := s.processBatch(rdr.Record(), frag.PartitionValues())
		if err != nil {
			return fmt.Errorf("%s: %w", frag, err)
		}
		if rec.NumRows() == 0 {
			continue
		}
		for off := 0; off < rec.NumRows(); off += s.cfg.batchSize {
			end := off + s.cfg.batchSize
			if end > rec.NumRows() {
				end = rec.NumRows()
			}
			part := rec
			if off != 0 || end != rec.NumRows() {
				part, err = rec.NewSlice(off, end)
				if err != nil {
					return err
				}
			}
			select {
			case out <- RecordMessage{Record: part}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err := rdr.Err(); err != nil {
		return fmt.Errorf("%w: reading %s: %v", quiver.ErrIO, frag, err)
	}
	return nil
}

func (s *Scanner) processBatch(rec *array.Record, partition []PartitionValue) (*array.Record, error) {
	rec, err := alignRecord(rec, partition, s.ds.Schema())
	if err != nil {
		return nil, err
	}
	if s.cfg.filter != nil {
		rec, err = compute.Filter(rec, s.cfg.filter)
		if err != nil {
			return nil, err
		}
	}
	if s.cfg.projExprs != nil {
		rec, err = compute.Project(rec, s.cfg.projNames, s.cfg.projExprs)
		if err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// alignRecord reorders a physical record's columns to the dataset
// schema, materializing partition columns and filling fields the file
// lacks with nulls.
func alignRecord(rec *array.Record, partition []PartitionValue, schema *quiver.Schema) (*array.Record, error) {
	parts := make(map[string]scalar.Scalar, len(partition))
	for _, pv := range partition {
		parts[pv.Key] = pv.Value
	}
	cols := make([]array.Array, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		f := schema.Field(i)
		if rec.Schema().HasField(f.Name) {
			col, err := rec.ColumnByName(f.Name)
			if err != nil {
				return nil, err
			}
			if !quiver.TypeEqual(col.DataType(), f.Type) {
				return nil, fmt.Errorf("%w: field %q is %s in file and %s in dataset",
					quiver.ErrSchemaMismatch, f.Name, col.DataType(), f.Type)
			}
			cols[i] = col
			continue
		}
		if pv, ok := parts[f.Name]; ok {
			col, err := scalar.MakeArrayFromScalar(pv, rec.NumRows())
			if err != nil {
				return nil, err
			}
			cols[i] = col
			continue
		}
		col, err := scalar.MakeArrayFromScalar(scalar.MakeNullScalar(f.Type), rec.NumRows())
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return array.NewRecord(schema, cols, rec.NumRows())
}

// ToTable runs the scan to completion and materializes all batches as
// a table.
func (s *Scanner) ToTable(ctx context.Context) (*array.Table, error) {
	schema, err := s.OutputSchema()
	if err != nil {
		return nil, err
	}
	var recs []*array.Record
	for msg := range s.ScanBatches(ctx) {
		if msg.Err != nil {
			return nil, msg.Err
		}
		if msg.Record.NumRows() == 0 {
			continue
		}
		recs = append(recs, msg.Record)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return array.NewTableFromRecords(schema, recs)
}
