package result

import (
	"encoding/json"
	"reflect"
)

// Result is the outcome of an operation returning a T.
type Result[T any] struct {
	value T
	err   Error
	ok    bool
}

// Success wraps v in a successful result. A nil v is still a success;
// use Create when nil should fail.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Failure returns a failed result carrying err. An empty err is replaced
// by NullValue so a failure always has a code.
func Failure[T any](err Error) Result[T] {
	if err.IsNone() {
		err = NullValue
	}
	return Result[T]{err: err}
}

// Create returns Success(v), or Failure(NullValue) when v is nil.
func Create[T any](v T) Result[T] {
	if isNil(v) {
		return Failure[T](NullValue)
	}
	return Success(v)
}

func (r Result[T]) IsSuccess() bool { return r.ok }

func (r Result[T]) IsFailure() bool { return !r.ok }

// Error returns the failure error, or None on success.
func (r Result[T]) Error() Error {
	if r.ok {
		return None
	}
	return r.err
}

// Value returns the value on success and the zero value of T on failure.
func (r Result[T]) Value() T {
	if !r.ok {
		var zero T
		return zero
	}
	return r.value
}

// Unwrap converts the result to Go's (value, error) form.
func (r Result[T]) Unwrap() (T, error) {
	if !r.ok {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Envelope is the wire form of a Result.
type Envelope[T any] struct {
	IsSuccess bool  `json:"isSuccess"`
	IsFailure bool  `json:"isFailure"`
	Error     Error `json:"error"`
	Value     T     `json:"value"`
}

func (r Result[T]) Envelope() Envelope[T] {
	return Envelope[T]{
		IsSuccess: r.IsSuccess(),
		IsFailure: r.IsFailure(),
		Error:     r.Error(),
		Value:     r.Value(),
	}
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Envelope())
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
