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

// Package value implements the ConstValue and IrValue data models: the
// ground values produced by constant evaluation, and the interpreter's
// richer working representation with dynamically-borrow-checked interior
// mutability.
package value

import "fmt"

// Kind identifies the shape of a ConstValue / IrValue.
type Kind uint8

// The closed set of value shapes constant evaluation can produce.
const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindBytes
	KindUnit
	KindTuple
	KindVec
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindUnit:
		return "unit"
	case KindTuple:
		return "tuple"
	case KindVec:
		return "vec"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ConstValue is a ground value produced by constant evaluation.  It is
// always copyable without sharing: Tuple/Vec/Object fields are plain Go
// slices/maps which Clone() deep-copies.
type ConstValue struct {
	kind   Kind
	i      int64
	f      float64
	b      bool
	s      string
	bytes  []byte
	tuple  []ConstValue
	vec    []ConstValue
	object *Object
}

// Object is an ordered string-keyed mapping of ConstValue.
type Object struct {
	keys   []string
	values map[string]ConstValue
}

// NewObject constructs an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]ConstValue)}
}

// Set inserts or overwrites a field, preserving first-insertion order.
func (o *Object) Set(key string, v ConstValue) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = v
}

// Get returns a field's value and whether it is present.
func (o *Object) Get(key string) (ConstValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Clone deep-copies this object.
func (o *Object) Clone() *Object {
	n := NewObject()
	for _, k := range o.keys {
		n.Set(k, o.values[k].Clone())
	}

	return n
}

// Int constructs an integer ConstValue.
func Int(v int64) ConstValue { return ConstValue{kind: KindInt, i: v} }

// Float constructs a floating-point ConstValue.
func Float(v float64) ConstValue { return ConstValue{kind: KindFloat, f: v} }

// Bool constructs a boolean ConstValue.
func Bool(v bool) ConstValue { return ConstValue{kind: KindBool, b: v} }

// String constructs a string ConstValue.
func String(v string) ConstValue { return ConstValue{kind: KindString, s: v} }

// Bytes constructs a byte-string ConstValue.
func Bytes(v []byte) ConstValue {
	cp := make([]byte, len(v))
	copy(cp, v)

	return ConstValue{kind: KindBytes, bytes: cp}
}

// Unit constructs the unit ConstValue.
func Unit() ConstValue { return ConstValue{kind: KindUnit} }

// Tuple constructs a tuple ConstValue from its elements.
func Tuple(elems ...ConstValue) ConstValue {
	return ConstValue{kind: KindTuple, tuple: append([]ConstValue(nil), elems...)}
}

// Vec constructs a vector ConstValue from its elements.
func Vec(elems ...ConstValue) ConstValue {
	return ConstValue{kind: KindVec, vec: append([]ConstValue(nil), elems...)}
}

// MakeObject constructs an object ConstValue from an already-built Object.
func MakeObject(o *Object) ConstValue {
	return ConstValue{kind: KindObject, object: o}
}

// Kind returns the shape of this value.
func (v ConstValue) Kind() Kind { return v.kind }

// AsInt returns the integer payload; only meaningful if Kind()==KindInt.
func (v ConstValue) AsInt() int64 { return v.i }

// AsFloat returns the float payload; only meaningful if Kind()==KindFloat.
func (v ConstValue) AsFloat() float64 { return v.f }

// AsBool returns the bool payload; only meaningful if Kind()==KindBool.
func (v ConstValue) AsBool() bool { return v.b }

// AsString returns the string payload; only meaningful if Kind()==KindString.
func (v ConstValue) AsString() string { return v.s }

// AsBytes returns the byte-string payload; only meaningful if Kind()==KindBytes.
func (v ConstValue) AsBytes() []byte { return v.bytes }

// AsTuple returns the tuple elements; only meaningful if Kind()==KindTuple.
func (v ConstValue) AsTuple() []ConstValue { return v.tuple }

// AsVec returns the vector elements; only meaningful if Kind()==KindVec.
func (v ConstValue) AsVec() []ConstValue { return v.vec }

// AsObject returns the object payload; only meaningful if Kind()==KindObject.
func (v ConstValue) AsObject() *Object { return v.object }

// Clone deep-copies this value so that no two ConstValues ever alias
// mutable storage.
func (v ConstValue) Clone() ConstValue {
	switch v.kind {
	case KindTuple:
		elems := make([]ConstValue, len(v.tuple))
		for i, e := range v.tuple {
			elems[i] = e.Clone()
		}

		return ConstValue{kind: KindTuple, tuple: elems}
	case KindVec:
		elems := make([]ConstValue, len(v.vec))
		for i, e := range v.vec {
			elems[i] = e.Clone()
		}

		return ConstValue{kind: KindVec, vec: elems}
	case KindObject:
		return ConstValue{kind: KindObject, object: v.object.Clone()}
	case KindBytes:
		return Bytes(v.bytes)
	default:
		return v
	}
}

// Equals performs a structural, deep comparison between two values.
func (v ConstValue) Equals(other ConstValue) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindBytes:
		return string(v.bytes) == string(other.bytes)
	case KindUnit:
		return true
	case KindTuple, KindVec:
		a, b := v.seq(), other.seq()
		if len(a) != len(b) {
			return false
		}

		for i := range a {
			if !a[i].Equals(b[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.object.keys) != len(other.object.keys) {
			return false
		}

		for _, k := range v.object.keys {
			a, aok := v.object.Get(k)
			b, bok := other.object.Get(k)

			if !aok || !bok || !a.Equals(b) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func (v ConstValue) seq() []ConstValue {
	if v.kind == KindTuple {
		return v.tuple
	}

	return v.vec
}

func (v ConstValue) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindBytes:
		return fmt.Sprintf("b%q", v.bytes)
	case KindUnit:
		return "()"
	case KindTuple:
		return seqString(v.tuple, "(", ")")
	case KindVec:
		return seqString(v.vec, "[", "]")
	case KindObject:
		return objectString(v.object)
	default:
		return "<invalid>"
	}
}

func seqString(elems []ConstValue, open, close string) string { //nolint:revive
	s := open

	for i, e := range elems {
		if i > 0 {
			s += ", "
		}

		s += e.String()
	}

	return s + close
}

func objectString(o *Object) string {
	s := "{"

	for i, k := range o.keys {
		if i > 0 {
			s += ", "
		}

		v, _ := o.Get(k)
		s += fmt.Sprintf("%s: %s", k, v.String())
	}

	return s + "}"
}
