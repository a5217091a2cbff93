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

// Package compute evaluates expressions against records. Expressions
// are small trees of field references, literals and named calls, built
// with the helper constructors and evaluated row by row.
package compute

import (
	"fmt"
	"strings"

	"github.com/quiverdata/quiver/scalar"
)

// Expression is a node of an expression tree: a FieldRef, a Literal or
// a Call.
type Expression interface {
	fmt.Stringer
	// FieldsUsed appends the names of fields referenced by the
	// expression tree.
	FieldsUsed(names []string) []string
}

// FieldRef refers to a named column of the record being evaluated.
type FieldRef struct {
	Name string
}

// NewFieldRef returns a reference to the named field.
func NewFieldRef(name string) FieldRef { return FieldRef{Name: name} }

func (f FieldRef) String() string { return f.Name }

func (f FieldRef) FieldsUsed(names []string) []string { return append(names, f.Name) }

// Literal is a constant value.
type Literal struct {
	Value scalar.Scalar
}

// NewLiteral wraps a native Go value as a literal expression.
func NewLiteral(v interface{}) Literal { return Literal{Value: scalar.MakeScalar(v)} }

func (l Literal) String() string { return l.Value.String() }

func (l Literal) FieldsUsed(names []string) []string { return names }

// Call applies the named function to its arguments.
type Call struct {
	Name string
	Args []Expression
}

// NewCall returns a call of the named function.
func NewCall(name string, args ...Expression) Call { return Call{Name: name, Args: args} }

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (c Call) FieldsUsed(names []string) []string {
	for _, a := range c.Args {
		names = a.FieldsUsed(names)
	}
	return names
}

// Comparison and arithmetic constructors.

func Equal(l, r Expression) Call        { return NewCall("equal", l, r) }
func NotEqual(l, r Expression) Call     { return NewCall("not_equal", l, r) }
func Greater(l, r Expression) Call      { return NewCall("greater", l, r) }
func GreaterEqual(l, r Expression) Call { return NewCall("greater_equal", l, r) }
func Less(l, r Expression) Call         { return NewCall("less", l, r) }
func LessEqual(l, r Expression) Call    { return NewCall("less_equal", l, r) }

func Add(l, r Expression) Call { return NewCall("add", l, r) }
func Sub(l, r Expression) Call { return NewCall("subtract", l, r) }
func Mul(l, r Expression) Call { return NewCall("multiply", l, r) }

func And(l, r Expression) Call { return NewCall("and", l, r) }
func Or(l, r Expression) Call  { return NewCall("or", l, r) }
func Not(e Expression) Call    { return NewCall("not", e) }
