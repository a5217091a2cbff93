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
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/quiverdata/quiver"
)

type discoveryConfig struct {
	logger       log.Logger
	partitioning Partitioning
	unifySchemas bool
}

// DiscoveryOption configures filesystem dataset discovery.
type DiscoveryOption func(*discoveryConfig)

// WithLogger sets the logger used for discovery diagnostics. The
// default discards everything.
func WithLogger(l log.Logger) DiscoveryOption {
	return func(c *discoveryConfig) { c.logger = l }
}

// WithPartitioning overrides the partitioning scheme. The default is
// HivePartitioning with inferred value types.
func WithPartitioning(p Partitioning) DiscoveryOption {
	return func(c *discoveryConfig) { c.partitioning = p }
}

// WithUnifySchemas makes discovery inspect every fragment and fail with
// a schema conflict if fragments disagree on a field's type. The
// default inspects only the first fragment.
func WithUnifySchemas() DiscoveryOption {
	return func(c *discoveryConfig) { c.unifySchemas = true }
}

// NewFileSystemDataset walks the directory tree under root, turning
// every file with the format's extension into a fragment with partition
// values parsed from its path. Files with other extensions, and files
// the format cannot inspect, are skipped with a warning. The logical
// schema is the first readable fragment's physical schema (or the
// unified schema with WithUnifySchemas) with partition fields appended
// in directory depth order.
func NewFileSystemDataset(fs afero.Fs, root string, format FileFormat, opts ...DiscoveryOption) (*FileSystemDataset, error) {
	cfg := discoveryConfig{
		logger:       log.NewNopLogger(),
		partitioning: HivePartitioning{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var frags []Fragment
	walkErr := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, format.DefaultExtension()) {
			level.Warn(cfg.logger).Log("msg", "skipping file with unexpected extension",
				"path", path, "format", format.Name())
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = strings.TrimPrefix(path, root+"/")
		}
		partition, err := cfg.partitioning.Parse(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		frags = append(frags, NewFileFragment(fs, path, format, partition))
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", quiver.ErrIO, root, walkErr)
	}
	if len(frags) == 0 {
		return nil, fmt.Errorf("%w: no %s files under %s", quiver.ErrInvalid, format.Name(), root)
	}

	schema, frags, err := discoverSchema(frags, cfg)
	if err != nil {
		return nil, err
	}
	return &FileSystemDataset{schema: schema, frags: frags, root: root, format: format}, nil
}

// discoverSchema resolves the dataset's logical schema: file-derived
// fields first, then partition fields in depth order of first
// appearance. Fragments whose file cannot be inspected are dropped with
// a warning; inspection stops at the first readable fragment unless
// schemas are being unified.
func discoverSchema(frags []Fragment, cfg discoveryConfig) (*quiver.Schema, []Fragment, error) {
	usable := frags[:0:0]
	skip := func(frag Fragment, err error) {
		level.Warn(cfg.logger).Log("msg", "skipping unreadable fragment",
			"fragment", frag.String(), "err", err)
	}

	var fields []quiver.Field
	index := make(map[string]int)
	found := false
	next := 0
	for ; next < len(frags); next++ {
		s, err := frags[next].Schema()
		if err != nil {
			skip(frags[next], err)
			continue
		}
		usable = append(usable, frags[next])
		fields = s.Fields()
		for i, f := range fields {
			index[f.Name] = i
		}
		found = true
		next++
		break
	}
	if !found {
		return nil, nil, fmt.Errorf("%w: no readable fragments", quiver.ErrInvalid)
	}

	if !cfg.unifySchemas {
		// first readable fragment wins; the rest join uninspected
		usable = append(usable, frags[next:]...)
	} else {
		for ; next < len(frags); next++ {
			s, err := frags[next].Schema()
			if err != nil {
				skip(frags[next], err)
				continue
			}
			usable = append(usable, frags[next])
			for _, f := range s.Fields() {
				i, ok := index[f.Name]
				if !ok {
					index[f.Name] = len(fields)
					fields = append(fields, f)
					continue
				}
				if !quiver.TypeEqual(fields[i].Type, f.Type) {
					return nil, nil, fmt.Errorf("%w: field %q is %s in one fragment and %s in another",
						quiver.ErrSchemaConflict, f.Name, fields[i].Type, f.Type)
				}
				fields[i].Nullable = fields[i].Nullable || f.Nullable
			}
		}
	}

	for _, frag := range usable {
		for _, pv := range frag.PartitionValues() {
			i, ok := index[pv.Key]
			if !ok {
				index[pv.Key] = len(fields)
				fields = append(fields, quiver.Field{Name: pv.Key, Type: pv.Value.DataType()})
				continue
			}
			if !quiver.TypeEqual(fields[i].Type, pv.Value.DataType()) {
				return nil, nil, fmt.Errorf("%w: partition key %q is %s in one path and %s in another",
					quiver.ErrSchemaConflict, pv.Key, fields[i].Type, pv.Value.DataType())
			}
		}
	}
	return quiver.NewSchema(fields, nil), usable, nil
}
