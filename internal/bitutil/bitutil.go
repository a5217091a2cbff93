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

// Package bitutil provides the bit manipulation primitives used by
// validity bitmaps and bit-packed boolean storage.
package bitutil

import "math/bits"

// BitIsSet reports whether bit i of buf is set, LSB ordering.
func BitIsSet(buf []byte, i int) bool {
	return buf[uint(i)/8]&(1<<(uint(i)%8)) != 0
}

// SetBit sets bit i of buf, LSB ordering.
func SetBit(buf []byte, i int) {
	buf[uint(i)/8] |= 1 << (uint(i) % 8)
}

// ClearBit clears bit i of buf, LSB ordering.
func ClearBit(buf []byte, i int) {
	buf[uint(i)/8] &^= 1 << (uint(i) % 8)
}

// SetBitTo sets or clears bit i of buf depending on val.
func SetBitTo(buf []byte, i int, val bool) {
	if val {
		SetBit(buf, i)
	} else {
		ClearBit(buf, i)
	}
}

// BytesForBits returns the number of bytes required to store n bits.
func BytesForBits(n int) int {
	return (n + 7) / 8
}

// CountSetBits counts the set bits in buf within [offset, offset+length).
func CountSetBits(buf []byte, offset, length int) int {
	count := 0
	i := offset
	// leading unaligned bits
	for ; i < offset+length && i%8 != 0; i++ {
		if BitIsSet(buf, i) {
			count++
		}
	}
	// whole bytes
	for ; i+8 <= offset+length; i += 8 {
		count += bits.OnesCount8(buf[i/8])
	}
	// trailing bits
	for ; i < offset+length; i++ {
		if BitIsSet(buf, i) {
			count++
		}
	}
	return count
}
