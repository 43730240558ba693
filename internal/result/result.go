// Package result provides the success/failure carrier used as the return
// type of every domain operation, pairing an HTTP-status-like code with
// either data or an error message, plus the combinators that chain
// validating steps with short-circuit semantics.
package result

import "net/http"

// Result is the outcome of a domain operation: either a Success holding
// data or a Failure holding an error message, each with a status code.
type Result[T any] struct {
	status  int
	data    T
	err     string
	success bool
}

// OK constructs a 200 Success with the given data.
func OK[T any](data T) Result[T] {
	return Result[T]{status: http.StatusOK, data: data, success: true}
}

// Created constructs a 201 Success with the given data.
func Created[T any](data T) Result[T] {
	return Result[T]{status: http.StatusCreated, data: data, success: true}
}

// NotFound constructs a 404 Failure with the given message.
func NotFound[T any](msg string) Result[T] {
	return Result[T]{status: http.StatusNotFound, err: msg}
}

// Conflict constructs a 409 Failure with the given message.
func Conflict[T any](msg string) Result[T] {
	return Result[T]{status: http.StatusConflict, err: msg}
}

// Unauthorized constructs a 401 Failure with the given message.
func Unauthorized[T any](msg string) Result[T] {
	return Result[T]{status: http.StatusUnauthorized, err: msg}
}

// Forbidden constructs a 403 Failure with the given message.
func Forbidden[T any](msg string) Result[T] {
	return Result[T]{status: http.StatusForbidden, err: msg}
}

// UnprocessableEntity constructs a 422 Failure with the given message.
func UnprocessableEntity[T any](msg string) Result[T] {
	return Result[T]{status: http.StatusUnprocessableEntity, err: msg}
}

// Internal constructs a 500 Failure. It carries collaborator errors
// (storage connectivity and the like) to the boundary; domain rules never
// produce it.
func Internal[T any](msg string) Result[T] {
	return Result[T]{status: http.StatusInternalServerError, err: msg}
}

// IsSuccess reports whether the result is a Success.
func (r Result[T]) IsSuccess() bool { return r.success }

// Status returns the HTTP-status-like code of the outcome.
func (r Result[T]) Status() int { return r.status }

// Data returns the payload of a Success. For a Failure it returns the
// zero value.
func (r Result[T]) Data() T { return r.data }

// Err returns the error message of a Failure, or "" for a Success.
func (r Result[T]) Err() string { return r.err }

// Map replaces a Success's data with f(data), keeping the status. A
// Failure passes through unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.success {
		return Result[U]{status: r.status, err: r.err}
	}
	return Result[U]{status: r.status, data: f(r.data), success: true}
}

// AndThen replaces a Success with f(data), which may change the status,
// the payload type, or turn the outcome into a Failure. A Failure
// short-circuits: f is not invoked and the failure passes through.
func AndThen[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if !r.success {
		return Result[U]{status: r.status, err: r.err}
	}
	return f(r.data)
}

// WithSideEffect invokes f(data) for its effect (typically a persistence
// write) and returns the Success unchanged. A Failure skips the effect.
// If the effect itself fails, the result becomes a 500 Failure; effects
// already executed earlier in the chain are not rolled back.
func WithSideEffect[T any](r Result[T], f func(T) error) Result[T] {
	if !r.success {
		return r
	}
	if err := f(r.data); err != nil {
		return Internal[T](err.Error())
	}
	return r
}

// MapFailureStatus replaces a Failure's status with f(status). A Success
// passes through unchanged. Used to remap a not-found into an
// unauthorized so login does not reveal whether the id or the password
// was wrong.
func MapFailureStatus[T any](r Result[T], f func(int) int) Result[T] {
	if r.success {
		return r
	}
	r.status = f(r.status)
	return r
}
