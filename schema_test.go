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

package quiver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdata/quiver"
)

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		left, right quiver.DataType
		want        bool
	}{
		{quiver.PrimitiveTypes.Int32, quiver.PrimitiveTypes.Int32, true},
		{quiver.PrimitiveTypes.Int32, quiver.PrimitiveTypes.Int64, false},
		{quiver.BinaryTypes.String, quiver.BinaryTypes.Binary, false},
		{
			&quiver.TimestampType{Unit: quiver.Millisecond, TimeZone: "UTC"},
			&quiver.TimestampType{Unit: quiver.Millisecond, TimeZone: "UTC"},
			true,
		},
		{
			&quiver.TimestampType{Unit: quiver.Millisecond},
			&quiver.TimestampType{Unit: quiver.Nanosecond},
			false,
		},
		{
			quiver.ListOf(quiver.PrimitiveTypes.Int64),
			quiver.ListOf(quiver.PrimitiveTypes.Int64),
			true,
		},
		{
			quiver.ListOf(quiver.PrimitiveTypes.Int64),
			quiver.ListOf(quiver.PrimitiveTypes.Float64),
			false,
		},
		{
			quiver.StructOf(quiver.Field{Name: "a", Type: quiver.PrimitiveTypes.Int8}),
			quiver.StructOf(quiver.Field{Name: "a", Type: quiver.PrimitiveTypes.Int8}),
			true,
		},
		{
			quiver.StructOf(quiver.Field{Name: "a", Type: quiver.PrimitiveTypes.Int8}),
			quiver.StructOf(quiver.Field{Name: "b", Type: quiver.PrimitiveTypes.Int8}),
			false,
		},
		{&quiver.Decimal128Type{Precision: 10, Scale: 2}, &quiver.Decimal128Type{Precision: 10, Scale: 2}, true},
		{&quiver.Decimal128Type{Precision: 10, Scale: 2}, &quiver.Decimal128Type{Precision: 12, Scale: 2}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, quiver.TypeEqual(tc.left, tc.right), "%s vs %s", tc.left, tc.right)
	}
}

func TestSchemaBasics(t *testing.T) {
	s := quiver.NewSchema([]quiver.Field{
		{Name: "id", Type: quiver.PrimitiveTypes.Int64},
		{Name: "name", Type: quiver.BinaryTypes.String, Nullable: true},
		{Name: "name", Type: quiver.BinaryTypes.String, Nullable: true},
	}, nil)

	assert.Equal(t, 3, s.NumFields())
	assert.Equal(t, "id", s.Field(0).Name)
	assert.True(t, s.HasField("name"))
	assert.False(t, s.HasField("missing"))
	assert.Equal(t, []int{1, 2}, s.FieldIndices("name"))
	assert.Equal(t, 0, s.FieldIndex("id"))
	assert.Equal(t, -1, s.FieldIndex("missing"))
}

func TestSchemaEqualAndFingerprint(t *testing.T) {
	fields := []quiver.Field{
		{Name: "a", Type: quiver.PrimitiveTypes.Int32},
		{Name: "b", Type: quiver.BinaryTypes.String, Nullable: true},
	}
	s1 := quiver.NewSchema(fields, nil)
	s2 := quiver.NewSchema(fields, nil)
	assert.True(t, s1.Equal(s2))
	assert.Equal(t, s1.Fingerprint(), s2.Fingerprint())

	s3 := quiver.NewSchema([]quiver.Field{
		{Name: "a", Type: quiver.PrimitiveTypes.Int64},
		{Name: "b", Type: quiver.BinaryTypes.String, Nullable: true},
	}, nil)
	assert.False(t, s1.Equal(s3))
	assert.NotEqual(t, s1.Fingerprint(), s3.Fingerprint())

	// nullability is part of the identity
	s4 := quiver.NewSchema([]quiver.Field{
		{Name: "a", Type: quiver.PrimitiveTypes.Int32, Nullable: true},
		{Name: "b", Type: quiver.BinaryTypes.String, Nullable: true},
	}, nil)
	assert.False(t, s1.Equal(s4))
}

func TestSchemaAddField(t *testing.T) {
	s := quiver.NewSchema([]quiver.Field{
		{Name: "a", Type: quiver.PrimitiveTypes.Int32},
	}, nil)

	s2, err := s.AddField(1, quiver.Field{Name: "b", Type: quiver.BinaryTypes.String})
	require.NoError(t, err)
	assert.Equal(t, 2, s2.NumFields())
	assert.Equal(t, 1, s.NumFields())

	_, err = s.AddField(5, quiver.Field{Name: "c", Type: quiver.BinaryTypes.String})
	assert.ErrorIs(t, err, quiver.ErrRange)
}

func TestMetadata(t *testing.T) {
	md := quiver.NewMetadata([]string{"k1", "k2"}, []string{"v1", "v2"})
	assert.Equal(t, 2, md.Len())
	assert.Equal(t, 0, md.FindKey("k1"))
	assert.Equal(t, -1, md.FindKey("nope"))

	md2 := quiver.MetadataFrom(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, []string{"a", "b"}, md2.Keys())
}
