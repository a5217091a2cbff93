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
	"net/url"
	"strings"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/scalar"
)

// PartitionValue is one key=value pair parsed from a partition path
// segment, in directory depth order.
type PartitionValue struct {
	Key   string
	Value scalar.Scalar
}

// Partitioning maps between relative file paths and partition values.
type Partitioning interface {
	// Parse extracts partition values from the directory segments of a
	// relative file path. Unrecognized segments are ignored.
	Parse(relPath string) ([]PartitionValue, error)

	// FormatValues renders partition values as the directory path that
	// encodes them.
	FormatValues(values []PartitionValue) string
}

// HivePartitioning recognizes key=value directory names, the layout
// written by Hive and most table formats. Field types are inferred from
// the value strings unless a schema pins them.
type HivePartitioning struct {
	// Schema, when non-nil, fixes the data type of each named partition
	// key; values failing to parse as the pinned type are errors rather
	// than falling back to strings.
	Schema *quiver.Schema
}

func (p HivePartitioning) Parse(relPath string) ([]PartitionValue, error) {
	var out []PartitionValue
	segments := strings.Split(relPath, "/")
	if len(segments) > 0 {
		segments = segments[:len(segments)-1] // last segment is the file name
	}
	for _, seg := range segments {
		key, raw, ok := strings.Cut(seg, "=")
		if !ok || key == "" {
			continue
		}
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			unescaped = raw
		}
		val, err := p.parseValue(key, unescaped)
		if err != nil {
			return nil, err
		}
		out = append(out, PartitionValue{Key: key, Value: val})
	}
	return out, nil
}

func (p HivePartitioning) parseValue(key, raw string) (scalar.Scalar, error) {
	if p.Schema != nil {
		if i := p.Schema.FieldIndex(key); i >= 0 {
			s, err := scalar.ParseScalar(p.Schema.Field(i).Type, raw)
			if err != nil {
				return nil, fmt.Errorf("partition key %q: %w", key, err)
			}
			return s, nil
		}
	}
	return scalar.ParsePartitionValue(raw), nil
}

func (p HivePartitioning) FormatValues(values []PartitionValue) string {
	segments := make([]string, len(values))
	for i, v := range values {
		segments[i] = v.Key + "=" + url.PathEscape(fmt.Sprintf("%v", v.Value.Value()))
	}
	return strings.Join(segments, "/")
}
