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

// Package decimal128 provides the 128-bit storage value for decimal types.
package decimal128

import "math/big"

// Num is a signed 128-bit integer in two's complement, the unscaled
// storage value of a decimal. Num is comparable with ==.
type Num struct {
	lo uint64
	hi int64
}

// New returns a Num from its high and low 64-bit halves.
func New(hi int64, lo uint64) Num { return Num{lo: lo, hi: hi} }

// FromI64 returns the Num representation of v.
func FromI64(v int64) Num {
	return Num{lo: uint64(v), hi: signExtend(v)}
}

// FromU64 returns the Num representation of v.
func FromU64(v uint64) Num {
	return Num{lo: v}
}

func signExtend(v int64) int64 {
	if v < 0 {
		return -1
	}
	return 0
}

func (n Num) LowBits() uint64 { return n.lo }
func (n Num) HighBits() int64 { return n.hi }

// Sign returns -1, 0 or +1 for negative, zero and positive values.
func (n Num) Sign() int {
	if n.hi < 0 {
		return -1
	}
	if n.hi == 0 && n.lo == 0 {
		return 0
	}
	return 1
}

// BigInt returns the value as a big integer.
func (n Num) BigInt() *big.Int {
	hi := big.NewInt(n.hi)
	hi.Lsh(hi, 64)
	return hi.Add(hi, new(big.Int).SetUint64(n.lo))
}

func (n Num) String() string { return n.BigInt().String() }
