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

package quiver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
)

// Metadata is an ordered, immutable set of key/value string pairs attached
// to a Schema or Field. Metadata never participates in type or schema
// equality.
type Metadata struct {
	keys   []string
	values []string
}

// NewMetadata builds metadata from parallel key/value slices.
//
// NewMetadata panics if the slice lengths differ.
func NewMetadata(keys, values []string) Metadata {
	if len(keys) != len(values) {
		panic("quiver: metadata len mismatch")
	}
	n := len(keys)
	return Metadata{
		keys:   append([]string(nil), keys[:n:n]...),
		values: append([]string(nil), values[:n:n]...),
	}
}

// MetadataFrom builds metadata from a map in sorted key order.
func MetadataFrom(kv map[string]string) Metadata {
	md := Metadata{
		keys:   make([]string, 0, len(kv)),
		values: make([]string, 0, len(kv)),
	}
	for k := range kv {
		md.keys = append(md.keys, k)
	}
	sort.Strings(md.keys)
	for _, k := range md.keys {
		md.values = append(md.values, kv[k])
	}
	return md
}

func (md Metadata) Len() int         { return len(md.keys) }
func (md Metadata) Keys() []string   { return md.keys }
func (md Metadata) Values() []string { return md.values }

// FindKey returns the index of the first key equal to k, or -1.
func (md Metadata) FindKey(k string) int {
	for i, v := range md.keys {
		if v == k {
			return i
		}
	}
	return -1
}

func (md Metadata) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i := range md.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %q", md.keys[i], md.values[i])
	}
	b.WriteString("]")
	return b.String()
}

// Field is a named, typed slot in a Schema or StructType.
type Field struct {
	Name     string
	Type     DataType
	Nullable bool
	Metadata Metadata
}

// Equal reports structural equality of name, type and nullability.
// Metadata is deliberately excluded.
func (f Field) Equal(o Field) bool {
	return f.Name == o.Name && f.Nullable == o.Nullable && TypeEqual(f.Type, o.Type)
}

func (f Field) String() string {
	nullable := ""
	if f.Nullable {
		nullable = ", nullable"
	}
	return fmt.Sprintf("%s: type=%v%s", f.Name, f.Type, nullable)
}

func (f Field) fingerprint() string {
	n := "r"
	if f.Nullable {
		n = "n"
	}
	return f.Name + "|" + n + "|" + f.Type.Fingerprint()
}

// Schema is an ordered sequence of fields. Field order is significant and
// defines column order in any associated tabular structure. Names need
// not be unique; lookup by name resolves to the first match.
//
// A Schema is immutable after construction.
type Schema struct {
	fields []Field
	index  map[string][]int
	meta   Metadata
}

// NewSchema returns a schema over the given fields. The metadata pointer
// may be nil.
//
// NewSchema panics if any field has a nil type.
func NewSchema(fields []Field, metadata *Metadata) *Schema {
	sc := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string][]int, len(fields)),
	}
	if metadata != nil {
		sc.meta = *metadata
	}
	for i, f := range fields {
		if f.Type == nil {
			panic("quiver: nil DataType for schema field")
		}
		sc.fields = append(sc.fields, f)
		sc.index[f.Name] = append(sc.index[f.Name], i)
	}
	return sc
}

func (sc *Schema) Metadata() Metadata { return sc.meta }
func (sc *Schema) NumFields() int     { return len(sc.fields) }
func (sc *Schema) Field(i int) Field  { return sc.fields[i] }

// Fields returns a copy of the field list.
func (sc *Schema) Fields() []Field {
	return append([]Field(nil), sc.fields...)
}

// FieldIndices returns the indices of all fields named name, in order.
func (sc *Schema) FieldIndices(name string) []int {
	return sc.index[name]
}

// FieldIndex returns the index of the first field named name, or -1.
func (sc *Schema) FieldIndex(name string) int {
	if idx, ok := sc.index[name]; ok {
		return idx[0]
	}
	return -1
}

func (sc *Schema) HasField(name string) bool { return sc.FieldIndex(name) >= 0 }

// Equal reports whether two schemas have equal fields in equal order.
// Metadata is excluded; nullability is part of field equality here
// (relaxations, where allowed, are applied by the caller).
func (sc *Schema) Equal(o *Schema) bool {
	switch {
	case sc == o:
		return true
	case sc == nil || o == nil:
		return false
	case len(sc.fields) != len(o.fields):
		return false
	case sc.Fingerprint() != o.Fingerprint():
		return false
	}
	for i, f := range sc.fields {
		if !f.Equal(o.fields[i]) {
			return false
		}
	}
	return true
}

// Fingerprint returns a hash covering field names, types, nullability and
// order. Equal schemas have equal fingerprints.
func (sc *Schema) Fingerprint() uint64 {
	var b strings.Builder
	for _, f := range sc.fields {
		b.WriteString(f.fingerprint())
		b.WriteString(";")
	}
	return xxh3.HashString(b.String())
}

// AddField returns a new schema with f inserted at position i.
func (sc *Schema) AddField(i int, f Field) (*Schema, error) {
	if i < 0 || i > len(sc.fields) {
		return nil, fmt.Errorf("%w: invalid field insertion index %d", ErrRange, i)
	}
	fields := make([]Field, 0, len(sc.fields)+1)
	fields = append(fields, sc.fields[:i]...)
	fields = append(fields, f)
	fields = append(fields, sc.fields[i:]...)
	return NewSchema(fields, &sc.meta), nil
}

func (sc *Schema) String() string {
	var b strings.Builder
	b.WriteString("schema:\n  fields: ")
	fmt.Fprintf(&b, "%d\n", len(sc.fields))
	for _, f := range sc.fields {
		fmt.Fprintf(&b, "    - %v\n", f)
	}
	if sc.meta.Len() > 0 {
		fmt.Fprintf(&b, "  metadata: %v\n", sc.meta)
	}
	return b.String()
}
