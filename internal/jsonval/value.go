// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package jsonval

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

// Value is one node of a parsed JSON document. A tree is built entirely
// within one Parse call and is never mutated afterwards.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Obj  Object
	Arr  []Value
}

// Object maps string keys to values. Duplicate keys in the input collapse
// to the last occurrence.
type Object map[string]Value

// String returns the string stored under key. Missing keys and keys holding
// a different variant are both reported as absent so callers fall through
// to their default.
func (o Object) String(key string) (string, bool) {
	v, ok := o[key]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Number returns the number stored under key, or absent.
func (o Object) Number(key string) (float64, bool) {
	v, ok := o[key]
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// Bool returns the boolean stored under key, or absent.
func (o Object) Bool(key string) (bool, bool) {
	v, ok := o[key]
	if !ok || v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

// Object returns the nested object stored under key, or absent.
func (o Object) Object(key string) (Object, bool) {
	v, ok := o[key]
	if !ok || v.Kind != KindObject {
		return nil, false
	}
	return v.Obj, true
}

// Array returns the array stored under key, or absent.
func (o Object) Array(key string) ([]Value, bool) {
	v, ok := o[key]
	if !ok || v.Kind != KindArray {
		return nil, false
	}
	return v.Arr, true
}
