// Package either provides a two-variant container used to carry a business
// outcome (success or domain error) as a plain value rather than a raised
// fault. An Either holds exactly one of its two sides; constructing one with
// a nil payload or reading the wrong side is a programmer error and panics.
package either

import "reflect"

// Either holds either a left value of type L or a right value of type R,
// never both and never neither. By convention L carries the error outcome
// and R the success outcome.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left constructs an Either holding the left (error) value.
// Panics if the value is nil.
func Left[L, R any](left L) Either[L, R] {
	mustNotBeNil(left, "either: Left value cannot be nil")
	return Either[L, R]{left: left}
}

// Right constructs an Either holding the right (success) value.
// Panics if the value is nil.
func Right[L, R any](right R) Either[L, R] {
	mustNotBeNil(right, "either: Right value cannot be nil")
	return Either[L, R]{right: right, isRight: true}
}

// IsLeft reports whether the Either holds a left value.
func (e Either[L, R]) IsLeft() bool {
	return !e.isRight
}

// IsRight reports whether the Either holds a right value.
func (e Either[L, R]) IsRight() bool {
	return e.isRight
}

// Left returns the left value. Panics if the Either is Right.
func (e Either[L, R]) Left() L {
	if e.isRight {
		panic("either: trying to get Left when Either is Right")
	}
	return e.left
}

// Right returns the right value. Panics if the Either is Left.
func (e Either[L, R]) Right() R {
	if !e.isRight {
		panic("either: trying to get Right when Either is Left")
	}
	return e.right
}

// Fold consumes both possibilities, applying onLeft or onRight to the held
// value and returning the common result type.
func Fold[L, R, U any](e Either[L, R], onLeft func(L) U, onRight func(R) U) U {
	if onLeft == nil || onRight == nil {
		panic("either: Fold mappers cannot be nil")
	}
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// mustNotBeNil panics with msg when v is a typed or untyped nil. Value kinds
// (ints, strings, structs) can never be nil and always pass.
func mustNotBeNil(v any, msg string) {
	if v == nil {
		panic(msg)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			panic(msg)
		}
	}
}
