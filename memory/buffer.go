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

// Package memory provides the byte storage shared read-only between
// array views. Buffers are never written after construction; the Go
// garbage collector owns their lifetime, so any number of slices and
// chunked views may alias the same buffer across goroutines without
// synchronization.
package memory

// Buffer is an immutable run of bytes.
type Buffer struct {
	data []byte
}

// NewBufferBytes wraps data without copying. The caller must not mutate
// data afterwards.
func NewBufferBytes(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewBufferCopy copies data into a fresh buffer.
func NewBufferCopy(data []byte) *Buffer {
	return &Buffer{data: append([]byte(nil), data...)}
}

// Bytes returns the underlying byte slice. Callers must treat the result
// as read-only.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}
