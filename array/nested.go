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
	"strings"

	"github.com/quiverdata/quiver"
)

// List is an array of variable-length lists of a single element type.
type List struct {
	array
	offsets []int32
	values  Array
}

func newListData(d *Data) *List {
	a := &List{}
	a.setData(d)
	if len(d.buffers) > 1 && d.buffers[1] != nil {
		a.offsets = castBytes[int32](d.buffers[1].Bytes())
	}
	a.values = MakeFromData(d.childData[0])
	return a
}

// ListValues returns the flattened child array shared by all lists.
func (a *List) ListValues() Array { return a.values }

// ValueOffsets returns the [start, end) range of list i in ListValues.
func (a *List) ValueOffsets(i int) (start, end int32) {
	o := a.data.offset
	return a.offsets[o+i], a.offsets[o+i+1]
}

// Value returns list i as a zero-copy view of the child array.
func (a *List) Value(i int) Array {
	start, end := a.ValueOffsets(i)
	return mustSlice(a.values, int(start), int(end-start))
}

func (a *List) String() string {
	return stringify(a, func(i int) string { return a.Value(i).String() })
}

// Struct is an array of tuples, one child array per field.
type Struct struct {
	array
	fields []Array
}

func newStructData(d *Data) *Struct {
	a := &Struct{fields: make([]Array, len(d.childData))}
	a.setData(d)
	for i, c := range d.childData {
		a.fields[i] = MakeFromData(c)
	}
	return a
}

// NumField returns the number of child fields.
func (a *Struct) NumField() int { return len(a.fields) }

// Field returns the child array at index i, sliced to this array's view.
func (a *Struct) Field(i int) Array {
	f := a.fields[i]
	if a.data.offset != 0 || f.Len() != a.data.length {
		return mustSlice(f, a.data.offset, a.data.length)
	}
	return f
}

func (a *Struct) String() string {
	st := a.DataType().(*quiver.StructType)
	return stringify(a, func(i int) string {
		var b strings.Builder
		b.WriteString("{")
		for j := 0; j < a.NumField(); j++ {
			if j > 0 {
				b.WriteString(" ")
			}
			b.WriteString(st.Field(j).Name)
			b.WriteString(":")
			f := a.Field(j)
			if f.IsNull(i) {
				b.WriteString("(null)")
			} else {
				b.WriteString(valueString(f, i))
			}
		}
		b.WriteString("}")
		return b.String()
	})
}
