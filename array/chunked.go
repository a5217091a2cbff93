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

package array

import (
	"fmt"
	"sort"

	"github.com/quiverdata/quiver"
)

// Chunked manages an ordered sequence of arrays as one logical column.
// The arrays are never copied; chunk boundaries carry no semantic
// meaning. Chunked values are immutable: Append produces a new Chunked
// sharing the existing chunks.
type Chunked struct {
	chunks []Array

	length int
	nulls  int
	dtype  quiver.DataType

	// cumulative row offsets, len(chunks)+1 entries; offsets[i] is the
	// global index of the first row of chunk i.
	offsets []int
}

// NewChunked returns a chunked array over chunks, all of which must have
// data type dtype. A nil dtype is inferred from the first chunk; at
// least one chunk is then required.
func NewChunked(dtype quiver.DataType, chunks []Array) (*Chunked, error) {
	if dtype == nil {
		if len(chunks) == 0 {
			return nil, fmt.Errorf("%w: cannot infer chunked type without chunks", quiver.ErrInvalid)
		}
		dtype = chunks[0].DataType()
	}
	c := &Chunked{
		chunks:  make([]Array, len(chunks)),
		dtype:   dtype,
		offsets: make([]int, len(chunks)+1),
	}
	for i, chunk := range chunks {
		if !quiver.TypeEqual(chunk.DataType(), dtype) {
			return nil, fmt.Errorf("%w: chunk %d has type %s, want %s",
				quiver.ErrTypeMismatch, i, chunk.DataType(), dtype)
		}
		c.chunks[i] = chunk
		c.offsets[i] = c.length
		c.length += chunk.Len()
		c.nulls += chunk.NullN()
	}
	c.offsets[len(chunks)] = c.length
	return c, nil
}

func (c *Chunked) Len() int                  { return c.length }
func (c *Chunked) NullN() int                { return c.nulls }
func (c *Chunked) DataType() quiver.DataType { return c.dtype }
func (c *Chunked) NumChunks() int            { return len(c.chunks) }
func (c *Chunked) Chunk(i int) Array         { return c.chunks[i] }

// Chunks returns a copy of the chunk list.
func (c *Chunked) Chunks() []Array {
	return append([]Array(nil), c.chunks...)
}

// resolve maps a global index to (chunk index, offset within chunk) by
// binary search over the cumulative offsets.
func (c *Chunked) resolve(i int) (chunk, offset int) {
	chunk = sort.Search(len(c.chunks), func(n int) bool { return c.offsets[n+1] > i })
	return chunk, i - c.offsets[chunk]
}

// Resolve maps a global row index to its chunk index and the offset
// within that chunk.
func (c *Chunked) Resolve(i int) (chunk, offset int, err error) {
	if i < 0 || i >= c.length {
		return 0, 0, fmt.Errorf("%w: index %d of chunked array of length %d",
			quiver.ErrRange, i, c.length)
	}
	chunk, offset = c.resolve(i)
	return chunk, offset, nil
}

// Append returns a new chunked array with arr added as the final chunk.
// The receiver is unchanged and its chunks are shared, not copied.
func (c *Chunked) Append(arr Array) (*Chunked, error) {
	if !quiver.TypeEqual(arr.DataType(), c.dtype) {
		return nil, fmt.Errorf("%w: appending chunk of type %s to chunked array of %s",
			quiver.ErrTypeMismatch, arr.DataType(), c.dtype)
	}
	chunks := make([]Array, 0, len(c.chunks)+1)
	chunks = append(chunks, c.chunks...)
	chunks = append(chunks, arr)
	return NewChunked(c.dtype, chunks)
}

// CombineChunks copies all values once into a single-chunk chunked
// array, useful before operations that need O(1) random access.
func (c *Chunked) CombineChunks() (*Chunked, error) {
	if len(c.chunks) == 1 {
		return NewChunked(c.dtype, c.chunks)
	}
	if len(c.chunks) == 0 {
		bldr, err := NewBuilder(c.dtype)
		if err != nil {
			return nil, err
		}
		return NewChunked(c.dtype, []Array{bldr.NewArray()})
	}
	combined, err := Concatenate(c.chunks)
	if err != nil {
		return nil, err
	}
	return NewChunked(c.dtype, []Array{combined})
}

// NewSlice returns a zero-copy view of rows [i, j); chunks overlapping
// the range are sliced, the rest are dropped.
func (c *Chunked) NewSlice(i, j int) (*Chunked, error) {
	if i < 0 || j < i || j > c.length {
		return nil, fmt.Errorf("%w: slice [%d, %d) of chunked array of length %d",
			quiver.ErrRange, i, j, c.length)
	}
	chunks := make([]Array, 0, len(c.chunks))
	remaining := j - i
	cur, beg := 0, i
	if c.length > 0 && i < c.length {
		cur, beg = c.resolve(i)
	}
	for ; cur < len(c.chunks) && remaining > 0; cur++ {
		arr := c.chunks[cur]
		n := arr.Len() - beg
		if n > remaining {
			n = remaining
		}
		chunks = append(chunks, mustSlice(arr, beg, n))
		remaining -= n
		beg = 0
	}
	return NewChunked(c.dtype, chunks)
}

func (c *Chunked) String() string {
	o := "["
	for i, chunk := range c.chunks {
		if i > 0 {
			o += " "
		}
		o += chunk.String()
	}
	return o + "]"
}
