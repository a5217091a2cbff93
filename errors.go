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

import "errors"

// Error taxonomy shared by every package in the module. Callers are
// expected to test with errors.Is; all failures produced by quiver wrap
// exactly one of these sentinels.
var (
	// ErrTypeMismatch is returned when operand types are structurally
	// incompatible for the requested operation.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrRange is returned when an index or slice violates the bounds of
	// the structure it addresses.
	ErrRange = errors.New("range error")

	// ErrSchemaMismatch is returned when tabular structures disagree on
	// schema for an operation that requires agreement.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrSchemaConflict is returned when dataset-wide schema unification
	// finds incompatible types for the same field name.
	ErrSchemaConflict = errors.New("schema conflict")

	// ErrOverflow is returned when a numeric cast would lose information.
	// Lossy conversions always fail, they are never silently truncated.
	ErrOverflow = errors.New("value overflow")

	// ErrKey is returned when a lookup by name fails or is ambiguous.
	ErrKey = errors.New("key error")

	// ErrIO is returned when an underlying file or stream operation fails.
	ErrIO = errors.New("io error")

	ErrInvalid        = errors.New("invalid")
	ErrNotImplemented = errors.New("not implemented")
)
