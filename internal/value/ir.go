// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package value

import "fmt"

// IrValue is the interpreter's working value representation.  It is a
// superset of ConstValue: scalar shapes are held directly, while the three
// composite shapes (Tuple, Vec, Object) are held behind a shared, borrow
// checked Cell so that field/index assignment within a const fn body can
// mutate them in place.
type IrValue struct {
	kind   Kind
	scalar ConstValue
	cell   *Cell
}

// IrObject is the mutable, ordered object payload held inside a Cell.
type IrObject struct {
	keys   []string
	values map[string]IrValue
}

// NewIrObject constructs an empty mutable object.
func NewIrObject() *IrObject {
	return &IrObject{values: make(map[string]IrValue)}
}

// Get returns a field and whether it is present.
func (o *IrObject) Get(key string) (IrValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set inserts or overwrites a field, preserving first-insertion order.
func (o *IrObject) Set(key string, v IrValue) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = v
}

// Keys returns the field names in insertion order.
func (o *IrObject) Keys() []string {
	return o.keys
}

// FromConst lifts a ground ConstValue into the interpreter's IrValue
// domain.  Composite shapes get a fresh, unshared Cell.
func FromConst(v ConstValue) IrValue {
	switch v.kind {
	case KindTuple:
		return newComposite(KindTuple, liftSeq(v.tuple))
	case KindVec:
		return newComposite(KindVec, liftSeq(v.vec))
	case KindObject:
		obj := NewIrObject()
		for _, k := range v.object.keys {
			fv, _ := v.object.Get(k)
			obj.Set(k, FromConst(fv))
		}

		return newComposite(KindObject, obj)
	default:
		return IrValue{kind: v.kind, scalar: v}
	}
}

func liftSeq(elems []ConstValue) []IrValue {
	out := make([]IrValue, len(elems))
	for i, e := range elems {
		out[i] = FromConst(e)
	}

	return out
}

func newComposite(kind Kind, payload any) IrValue {
	return IrValue{kind: kind, cell: NewCell(payload)}
}

// IrTuple constructs a fresh tuple IrValue.
func IrTuple(elems ...IrValue) IrValue { return newComposite(KindTuple, append([]IrValue(nil), elems...)) }

// IrVec constructs a fresh vector IrValue.
func IrVec(elems ...IrValue) IrValue { return newComposite(KindVec, append([]IrValue(nil), elems...)) }

// IrObjectValue constructs an object IrValue from an already-built IrObject.
func IrObjectValue(o *IrObject) IrValue { return newComposite(KindObject, o) }

// IrInt constructs a scalar integer IrValue.
func IrInt(v int64) IrValue { return IrValue{kind: KindInt, scalar: Int(v)} }

// IrFloat constructs a scalar float IrValue.
func IrFloat(v float64) IrValue { return IrValue{kind: KindFloat, scalar: Float(v)} }

// IrBool constructs a scalar bool IrValue.
func IrBool(v bool) IrValue { return IrValue{kind: KindBool, scalar: Bool(v)} }

// IrString constructs a scalar string IrValue.
func IrString(v string) IrValue { return IrValue{kind: KindString, scalar: String(v)} }

// IrUnit constructs the scalar unit IrValue.
func IrUnit() IrValue { return IrValue{kind: KindUnit, scalar: Unit()} }

// Kind returns the shape of this value.
func (v IrValue) Kind() Kind { return v.kind }

// Scalar returns the scalar payload; only meaningful for non-composite kinds.
func (v IrValue) Scalar() ConstValue { return v.scalar }

// Cell returns the underlying shared cell; only meaningful for composite
// kinds (Tuple, Vec, Object).
func (v IrValue) Cell() *Cell { return v.cell }

// Clone produces a value that shares the same underlying Cell for composite
// shapes, but is an independent copy for scalars.  This matches variable
// lookup's contract: a fresh *variable binding* with the same cell
// reference, so mutations through one alias are visible through the other.
func (v IrValue) Clone() IrValue {
	return v
}

func (v IrValue) String() string {
	switch v.kind {
	case KindTuple, KindVec, KindObject:
		return fmt.Sprintf("<%s>", v.kind)
	default:
		return v.scalar.String()
	}
}

// Snapshot deep-copies an IrValue down to a ConstValue.  It fails if any
// composite cell reachable from v still has a live borrow: the emitted
// artifact must hold no aliasing and no in-flight mutation.
func Snapshot(v IrValue) (ConstValue, error) {
	switch v.kind {
	case KindTuple, KindVec:
		if v.cell.IsBorrowed() {
			return ConstValue{}, fmt.Errorf("cannot snapshot %s: value is still borrowed", v.kind)
		}

		elems := v.cell.payload.([]IrValue)
		out := make([]ConstValue, len(elems))

		for i, e := range elems {
			cv, err := Snapshot(e)
			if err != nil {
				return ConstValue{}, err
			}

			out[i] = cv
		}

		if v.kind == KindTuple {
			return Tuple(out...), nil
		}

		return Vec(out...), nil
	case KindObject:
		if v.cell.IsBorrowed() {
			return ConstValue{}, fmt.Errorf("cannot snapshot object: value is still borrowed")
		}

		obj := v.cell.payload.(*IrObject)
		out := NewObject()

		for _, k := range obj.keys {
			fv, _ := obj.Get(k)

			cv, err := Snapshot(fv)
			if err != nil {
				return ConstValue{}, err
			}

			out.Set(k, cv)
		}

		return MakeObject(out), nil
	default:
		return v.scalar, nil
	}
}
