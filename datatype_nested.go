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

import "strings"

// ListType describes a list of elements that all share the same type.
type ListType struct {
	elem Field
}

// ListOf returns the list type with element type t. The element field is
// named "item" and is nullable.
//
// ListOf panics if t is nil.
func ListOf(t DataType) *ListType {
	if t == nil {
		panic("quiver: nil DataType for list type")
	}
	return &ListType{elem: Field{Name: "item", Type: t, Nullable: true}}
}

func (*ListType) ID() Type     { return LIST }
func (*ListType) Name() string { return "list" }

// Elem returns the ListType's element type.
func (t *ListType) Elem() DataType { return t.elem.Type }

// ElemField returns the full field describing list elements.
func (t *ListType) ElemField() Field { return t.elem }

func (t *ListType) Fields() []Field { return []Field{t.elem} }

func (t *ListType) String() string { return "list<item: " + t.elem.Type.String() + ">" }

func (t *ListType) Fingerprint() string {
	return typeIDFingerprint(LIST) + "{" + t.elem.Type.Fingerprint() + "}"
}

// StructType describes a nested type parameterized by an ordered sequence
// of named fields.
type StructType struct {
	fields []Field
	index  map[string][]int
}

// StructOf returns the struct type with the given fields. Field names may
// repeat; lookup by name resolves to the first match.
//
// StructOf panics if any field has a nil type.
func StructOf(fs ...Field) *StructType {
	n := len(fs)
	t := &StructType{
		fields: make([]Field, n),
		index:  make(map[string][]int, n),
	}
	for i, f := range fs {
		if f.Type == nil {
			panic("quiver: nil DataType for struct field")
		}
		t.fields[i] = f
		t.index[f.Name] = append(t.index[f.Name], i)
	}
	return t
}

func (*StructType) ID() Type     { return STRUCT }
func (*StructType) Name() string { return "struct" }

func (t *StructType) Fields() []Field   { return t.fields }
func (t *StructType) Field(i int) Field { return t.fields[i] }
func (t *StructType) NumFields() int    { return len(t.fields) }

// FieldIdx returns the index of the first field named name, or -1.
func (t *StructType) FieldIdx(name string) int {
	if idx, ok := t.index[name]; ok {
		return idx[0]
	}
	return -1
}

func (t *StructType) String() string {
	var b strings.Builder
	b.WriteString("struct<")
	for i, f := range t.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Type.String())
	}
	b.WriteString(">")
	return b.String()
}

func (t *StructType) Fingerprint() string {
	var b strings.Builder
	b.WriteString(typeIDFingerprint(STRUCT))
	b.WriteString("{")
	for _, f := range t.fields {
		b.WriteString(f.fingerprint())
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}
