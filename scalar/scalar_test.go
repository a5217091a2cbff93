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

package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/scalar"
)

func TestMakeScalar(t *testing.T) {
	s := scalar.MakeScalar(int64(42))
	assert.True(t, s.IsValid())
	assert.True(t, quiver.TypeEqual(quiver.PrimitiveTypes.Int64, s.DataType()))
	assert.Equal(t, int64(42), s.Value())

	s = scalar.MakeScalar("hi")
	assert.Equal(t, "hi", s.Value())

	s = scalar.MakeScalar(nil)
	assert.False(t, s.IsValid())
	assert.Nil(t, s.Value())
}

func TestParseScalar(t *testing.T) {
	s, err := scalar.ParseScalar(quiver.PrimitiveTypes.Int32, "123")
	require.NoError(t, err)
	assert.Equal(t, int32(123), s.Value())

	s, err = scalar.ParseScalar(quiver.PrimitiveTypes.Float64, "1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, s.Value())

	s, err = scalar.ParseScalar(quiver.FixedWidthTypes.Boolean, "true")
	require.NoError(t, err)
	assert.Equal(t, true, s.Value())

	_, err = scalar.ParseScalar(quiver.PrimitiveTypes.Int8, "300")
	assert.ErrorIs(t, err, quiver.ErrInvalid)
	_, err = scalar.ParseScalar(quiver.PrimitiveTypes.Int32, "abc")
	assert.ErrorIs(t, err, quiver.ErrInvalid)
}

func TestParsePartitionValue(t *testing.T) {
	assert.Equal(t, int64(7), scalar.ParsePartitionValue("7").Value())
	assert.Equal(t, 2.5, scalar.ParsePartitionValue("2.5").Value())
	assert.Equal(t, true, scalar.ParsePartitionValue("true").Value())
	assert.Equal(t, "sub", scalar.ParsePartitionValue("sub").Value())
}

func TestEquals(t *testing.T) {
	assert.True(t, scalar.Equals(scalar.MakeScalar(int64(1)), scalar.MakeScalar(int64(1))))
	assert.False(t, scalar.Equals(scalar.MakeScalar(int64(1)), scalar.MakeScalar(int64(2))))
	assert.False(t, scalar.Equals(scalar.MakeScalar(int64(1)), scalar.MakeScalar("1")))
	assert.True(t, scalar.Equals(
		scalar.MakeNullScalar(quiver.PrimitiveTypes.Int64),
		scalar.MakeNullScalar(quiver.PrimitiveTypes.Int64)))
	assert.False(t, scalar.Equals(
		scalar.MakeNullScalar(quiver.PrimitiveTypes.Int64),
		scalar.MakeScalar(int64(0))))
}

func TestGetScalar(t *testing.T) {
	arr, err := array.FromSliceWithType(quiver.PrimitiveTypes.Int64,
		[]interface{}{int64(10), nil})
	require.NoError(t, err)

	s, err := scalar.GetScalar(arr, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Value())

	s, err = scalar.GetScalar(arr, 1)
	require.NoError(t, err)
	assert.False(t, s.IsValid())

	_, err = scalar.GetScalar(arr, 5)
	assert.ErrorIs(t, err, quiver.ErrRange)
}

func TestGetScalarChunked(t *testing.T) {
	a, err := array.FromSlice([]string{"x"})
	require.NoError(t, err)
	b, err := array.FromSlice([]string{"y", "z"})
	require.NoError(t, err)
	c, err := array.NewChunked(nil, []array.Array{a, b})
	require.NoError(t, err)

	s, err := scalar.GetScalarChunked(c, 2)
	require.NoError(t, err)
	assert.Equal(t, "z", s.Value())
}

func TestMakeArrayFromScalar(t *testing.T) {
	arr, err := scalar.MakeArrayFromScalar(scalar.MakeScalar("sub"), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, 0, arr.NullN())
	assert.Equal(t, "sub", arr.(*array.String).Value(2))

	nulls, err := scalar.MakeArrayFromScalar(scalar.MakeNullScalar(quiver.PrimitiveTypes.Int64), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, nulls.NullN())
}
