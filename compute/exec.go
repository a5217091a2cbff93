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

package compute

import (
	"fmt"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/scalar"
)

// Evaluate computes the expression against one record, producing an
// array with one element per row. Nulls propagate: any null input to a
// call makes the output element null.
func Evaluate(expr Expression, rec *array.Record) (array.Array, error) {
	switch e := expr.(type) {
	case FieldRef:
		return rec.ColumnByName(e.Name)
	case Literal:
		return scalar.MakeArrayFromScalar(e.Value, rec.NumRows())
	case Call:
		args := make([]array.Array, len(e.Args))
		for i, a := range e.Args {
			arr, err := Evaluate(a, rec)
			if err != nil {
				return nil, err
			}
			args[i] = arr
		}
		return evalCall(e.Name, args, rec.NumRows())
	default:
		return nil, fmt.Errorf("%w: expression %T", quiver.ErrNotImplemented, expr)
	}
}

func evalCall(name string, args []array.Array, rows int) (array.Array, error) {
	switch name {
	case "equal", "not_equal", "greater", "greater_equal", "less", "less_equal":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %s expects 2 arguments, got %d", quiver.ErrInvalid, name, len(args))
		}
		return evalComparison(name, args[0], args[1], rows)
	case "add", "subtract", "multiply":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %s expects 2 arguments, got %d", quiver.ErrInvalid, name, len(args))
		}
		return evalArithmetic(name, args[0], args[1], rows)
	case "and", "or":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %s expects 2 arguments, got %d", quiver.ErrInvalid, name, len(args))
		}
		return evalLogical(name, args[0], args[1], rows)
	case "not":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: not expects 1 argument, got %d", quiver.ErrInvalid, len(args))
		}
		return evalNot(args[0], rows)
	default:
		return nil, fmt.Errorf("%w: function %q", quiver.ErrKey, name)
	}
}

// operand views one element as a comparable value. Integers and floats
// are widened so mixed numeric comparisons work.
type operand struct {
	i     int64
	u     uint64
	f     float64
	s     string
	b     bool
	class int
}

const (
	opInt = iota
	opUint
	opFloat
	opString
	opBool
)

func operandAt(arr array.Array, i int) (operand, error) {
	switch v := array.GoValue(arr, i).(type) {
	case bool:
		return operand{b: v, class: opBool}, nil
	case int8:
		return operand{i: int64(v), class: opInt}, nil
	case int16:
		return operand{i: int64(v), class: opInt}, nil
	case int32:
		return operand{i: int64(v), class: opInt}, nil
	case int64:
		return operand{i: v, class: opInt}, nil
	case uint8:
		return operand{u: uint64(v), class: opUint}, nil
	case uint16:
		return operand{u: uint64(v), class: opUint}, nil
	case uint32:
		return operand{u: uint64(v), class: opUint}, nil
	case uint64:
		return operand{u: v, class: opUint}, nil
	case float32:
		return operand{f: float64(v), class: opFloat}, nil
	case float64:
		return operand{f: v, class: opFloat}, nil
	case string:
		return operand{s: v, class: opString}, nil
	case quiver.Date32:
		return operand{i: int64(v), class: opInt}, nil
	case quiver.Date64:
		return operand{i: int64(v), class: opInt}, nil
	case quiver.Timestamp:
		return operand{i: int64(v), class: opInt}, nil
	case quiver.Time32:
		return operand{i: int64(v), class: opInt}, nil
	case quiver.Time64:
		return operand{i: int64(v), class: opInt}, nil
	default:
		return operand{}, fmt.Errorf("%w: comparing values of type %s", quiver.ErrTypeMismatch, arr.DataType())
	}
}

// compare returns -1, 0 or 1. Numeric operands of different classes are
// compared as float64.
func compare(l, r operand) (int, error) {
	if l.class == opString || r.class == opString {
		if l.class != opString || r.class != opString {
			return 0, fmt.Errorf("%w: comparing string with non-string", quiver.ErrTypeMismatch)
		}
		switch {
		case l.s < r.s:
			return -1, nil
		case l.s > r.s:
			return 1, nil
		}
		return 0, nil
	}
	if l.class == opBool || r.class == opBool {
		if l.class != opBool || r.class != opBool {
			return 0, fmt.Errorf("%w: comparing boolean with non-boolean", quiver.ErrTypeMismatch)
		}
		switch {
		case l.b == r.b:
			return 0, nil
		case r.b:
			return -1, nil
		}
		return 1, nil
	}
	if l.class == r.class {
		switch l.class {
		case opInt:
			switch {
			case l.i < r.i:
				return -1, nil
			case l.i > r.i:
				return 1, nil
			}
			return 0, nil
		case opUint:
			switch {
			case l.u < r.u:
				return -1, nil
			case l.u > r.u:
				return 1, nil
			}
			return 0, nil
		}
	}
	lf, rf := l.asFloat(), r.asFloat()
	switch {
	case lf < rf:
		return -1, nil
	case lf > rf:
		return 1, nil
	}
	return 0, nil
}

func (o operand) asFloat() float64 {
	switch o.class {
	case opInt:
		return float64(o.i)
	case opUint:
		return float64(o.u)
	default:
		return o.f
	}
}

func evalComparison(name string, left, right array.Array, rows int) (array.Array, error) {
	bldr := array.NewBooleanBuilder()
	for i := 0; i < rows; i++ {
		if left.IsNull(i) || right.IsNull(i) {
			bldr.AppendNull()
			continue
		}
		l, err := operandAt(left, i)
		if err != nil {
			return nil, err
		}
		r, err := operandAt(right, i)
		if err != nil {
			return nil, err
		}
		c, err := compare(l, r)
		if err != nil {
			return nil, err
		}
		var v bool
		switch name {
		case "equal":
			v = c == 0
		case "not_equal":
			v = c != 0
		case "greater":
			v = c > 0
		case "greater_equal":
			v = c >= 0
		case "less":
			v = c < 0
		case "less_equal":
			v = c <= 0
		}
		bldr.Append(v)
	}
	return bldr.NewArray(), nil
}

// evalArithmetic computes elementwise add, subtract or multiply. The
// result is float64 when either input is floating point, int64
// otherwise.
func evalArithmetic(name string, left, right array.Array, rows int) (array.Array, error) {
	isFloat := quiver.IsFloating(left.DataType().ID()) || quiver.IsFloating(right.DataType().ID())
	if !quiver.IsNumeric(left.DataType().ID()) || !quiver.IsNumeric(right.DataType().ID()) {
		return nil, fmt.Errorf("%w: %s over %s and %s",
			quiver.ErrTypeMismatch, name, left.DataType(), right.DataType())
	}
	if isFloat {
		bldr := array.NewNumericBuilder[float64](quiver.PrimitiveTypes.Float64)
		for i := 0; i < rows; i++ {
			if left.IsNull(i) || right.IsNull(i) {
				bldr.AppendNull()
				continue
			}
			l, err := operandAt(left, i)
			if err != nil {
				return nil, err
			}
			r, err := operandAt(right, i)
			if err != nil {
				return nil, err
			}
			bldr.Append(applyFloat(name, l.asFloat(), r.asFloat()))
		}
		return bldr.NewArray(), nil
	}
	bldr := array.NewNumericBuilder[int64](quiver.PrimitiveTypes.Int64)
	for i := 0; i < rows; i++ {
		if left.IsNull(i) || right.IsNull(i) {
			bldr.AppendNull()
			continue
		}
		l, err := operandAt(left, i)
		if err != nil {
			return nil, err
		}
		r, err := operandAt(right, i)
		if err != nil {
			return nil, err
		}
		bldr.Append(applyInt(name, l.asInt(), r.asInt()))
	}
	return bldr.NewArray(), nil
}

func (o operand) asInt() int64 {
	if o.class == opUint {
		return int64(o.u)
	}
	return o.i
}

func applyFloat(name string, l, r float64) float64 {
	switch name {
	case "add":
		return l + r
	case "subtract":
		return l - r
	default:
		return l * r
	}
}

func applyInt(name string, l, r int64) int64 {
	switch name {
	case "add":
		return l + r
	case "subtract":
		return l - r
	default:
		return l * r
	}
}

func evalLogical(name string, left, right array.Array, rows int) (array.Array, error) {
	la, lok := left.(*array.Boolean)
	ra, rok := right.(*array.Boolean)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: %s over %s and %s",
			quiver.ErrTypeMismatch, name, left.DataType(), right.DataType())
	}
	bldr := array.NewBooleanBuilder()
	for i := 0; i < rows; i++ {
		if left.IsNull(i) || right.IsNull(i) {
			bldr.AppendNull()
			continue
		}
		if name == "and" {
			bldr.Append(la.Value(i) && ra.Value(i))
		} else {
			bldr.Append(la.Value(i) || ra.Value(i))
		}
	}
	return bldr.NewArray(), nil
}

func evalNot(arg array.Array, rows int) (array.Array, error) {
	ba, ok := arg.(*array.Boolean)
	if !ok {
		return nil, fmt.Errorf("%w: not over %s", quiver.ErrTypeMismatch, arg.DataType())
	}
	bldr := array.NewBooleanBuilder()
	for i := 0; i < rows; i++ {
		if arg.IsNull(i) {
			bldr.AppendNull()
			continue
		}
		bldr.Append(!ba.Value(i))
	}
	return bldr.NewArray(), nil
}
