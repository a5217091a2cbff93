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

import "strconv"

type BinaryType struct{}

func (BinaryType) ID() Type            { return BINARY }
func (BinaryType) Name() string        { return "binary" }
func (BinaryType) String() string      { return "binary" }
func (BinaryType) Fingerprint() string { return typeIDFingerprint(BINARY) }
func (BinaryType) binary()             {}

type StringType struct{}

func (StringType) ID() Type            { return STRING }
func (StringType) Name() string        { return "utf8" }
func (StringType) String() string      { return "utf8" }
func (StringType) Fingerprint() string { return typeIDFingerprint(STRING) }
func (StringType) binary()             {}

// FixedSizeBinaryType describes binary values that all occupy ByteWidth bytes.
type FixedSizeBinaryType struct {
	ByteWidth int
}

func (*FixedSizeBinaryType) ID() Type     { return FIXED_SIZE_BINARY }
func (*FixedSizeBinaryType) Name() string { return "fixed_size_binary" }
func (t *FixedSizeBinaryType) BitWidth() int { return 8 * t.ByteWidth }
func (t *FixedSizeBinaryType) String() string {
	return "fixed_size_binary[" + strconv.Itoa(t.ByteWidth) + "]"
}
func (t *FixedSizeBinaryType) Fingerprint() string {
	return typeIDFingerprint(FIXED_SIZE_BINARY) + strconv.Itoa(t.ByteWidth)
}

var BinaryTypes = struct {
	Binary DataType
	String DataType
}{
	Binary: BinaryType{},
	String: StringType{},
}
