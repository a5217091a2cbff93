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

package array_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
)

func stringChunks(t *testing.T, chunks ...[]string) *array.Chunked {
	t.Helper()
	arrs := make([]array.Array, len(chunks))
	for i, c := range chunks {
		arr, err := array.FromSlice(c)
		require.NoError(t, err)
		arrs[i] = arr
	}
	c, err := array.NewChunked(quiver.BinaryTypes.String, arrs)
	require.NoError(t, err)
	return c
}

func TestChunkedEqualIgnoresBoundaries(t *testing.T) {
	left := stringChunks(t, []string{"a"}, []string{"b", "c"})
	right := stringChunks(t, []string{"a", "b"}, []string{"c"})
	single := stringChunks(t, []string{"a", "b", "c"})

	assert.True(t, array.ChunkedEqual(left, right))
	assert.True(t, array.ChunkedEqual(left, single))
	assert.True(t, array.ChunkedEqual(right, single))

	other := stringChunks(t, []string{"a", "b"}, []string{"x"})
	assert.False(t, array.ChunkedEqual(left, other))
}

func TestChunkedResolve(t *testing.T) {
	c := stringChunks(t, []string{"a"}, []string{"b", "c"}, []string{"d"})
	assert.Equal(t, 4, c.Len())

	tests := []struct {
		i, chunk, offset int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 1, 1},
		{3, 2, 0},
	}
	for _, tc := range tests {
		chunk, offset, err := c.Resolve(tc.i)
		require.NoError(t, err)
		assert.Equal(t, tc.chunk, chunk, "index %d", tc.i)
		assert.Equal(t, tc.offset, offset, "index %d", tc.i)
	}

	_, _, err := c.Resolve(4)
	assert.ErrorIs(t, err, quiver.ErrRange)
	_, _, err = c.Resolve(-1)
	assert.ErrorIs(t, err, quiver.ErrRange)
}

func TestChunkedAppendImmutable(t *testing.T) {
	c := stringChunks(t, []string{"a", "b"})
	arr, err := array.FromSlice([]string{"c"})
	require.NoError(t, err)

	c2, err := c.Append(arr)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.NumChunks())
	assert.Equal(t, 3, c2.Len())
	assert.Equal(t, 2, c2.NumChunks())

	ints, err := array.FromSlice([]int64{1})
	require.NoError(t, err)
	_, err = c.Append(ints)
	assert.ErrorIs(t, err, quiver.ErrTypeMismatch)
}

func TestChunkedNewSlice(t *testing.T) {
	c := stringChunks(t, []string{"a", "b"}, []string{"c", "d", "e"})

	s, err := c.NewSlice(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	want := stringChunks(t, []string{"b", "c", "d"})
	assert.True(t, array.ChunkedEqual(s, want))

	empty, err := c.NewSlice(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = c.NewSlice(2, 6)
	assert.ErrorIs(t, err, quiver.ErrRange)
}

func TestChunkedCombineChunks(t *testing.T) {
	c := stringChunks(t, []string{"a"}, []string{"b", "c"})
	combined, err := c.CombineChunks()
	require.NoError(t, err)
	assert.Equal(t, 1, combined.NumChunks())
	assert.True(t, array.ChunkedEqual(c, combined))
}
