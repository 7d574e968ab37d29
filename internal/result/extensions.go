package result

// WhenListHasEntries fails with NullValue for a nil list and with
// ListHasNoEntries for an empty one. Failures pass through.
func WhenListHasEntries[E any](r Result[[]E]) Result[[]E] {
	if r.IsFailure() {
		return r
	}
	if r.value == nil {
		return Failure[[]E](NullValue)
	}
	if len(r.value) == 0 {
		return Failure[[]E](ListHasNoEntries)
	}
	return r
}

// WithError replaces the error of a failed result. Successes are returned unchanged.
func (r Result[T]) WithError(err Error) Result[T] {
	if r.ok {
		return r
	}
	return Failure[T](err)
}

// Combine returns the first failure among r and others, or r if all succeeded.
func (r Result[T]) Combine(others ...Result[T]) Result[T] {
	if r.IsFailure() {
		return r
	}
	for _, o := range others {
		if o.IsFailure() {
			return o
		}
	}
	return r
}

// Validate fails with NullValue when the value is nil and with err when
// predicate rejects it. A failed r is returned with its own error.
func (r Result[T]) Validate(predicate func(T) bool, err Error) Result[T] {
	if r.IsFailure() {
		return r
	}
	if isNil(r.value) {
		return Failure[T](NullValue)
	}
	if !predicate(r.value) {
		return Failure[T](err)
	}
	return r
}

// Map applies fn to the value of a successful result.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsFailure() {
		return Failure[U](r.err)
	}
	return Success(fn(r.value))
}

// MapList maps every element of a successful list result. A nil list fails
// with NullValue; an empty list maps to an empty list.
func MapList[T, U any](r Result[[]T], fn func(T) U) Result[[]U] {
	if r.IsFailure() {
		return Failure[[]U](r.err)
	}
	if r.value == nil {
		return Failure[[]U](NullValue)
	}
	out := make([]U, 0, len(r.value))
	for _, v := range r.value {
		out = append(out, fn(v))
	}
	return Success(out)
}

// Then runs fn only when r succeeded; otherwise r's error is propagated.
func Then[T, U any](r Result[T], fn func() Result[U]) Result[U] {
	if r.IsFailure() {
		return Failure[U](r.err)
	}
	return fn()
}

// Bind is Then with access to the value.
func Bind[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsFailure() {
		return Failure[U](r.err)
	}
	return fn(r.value)
}

// FromError converts a Go error into a failed result. Errors that are not
// an Error are wrapped into fallback.
func FromError[T any](err error, fallback Error) Result[T] {
	if e, ok := AsError(err); ok {
		return Failure[T](e)
	}
	return Failure[T](fallback)
}
