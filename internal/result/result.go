// Package result carries the outcome of an asynchronous operation
// through its three states: loading, success, failure. A nil *Result
// means the operation has not been triggered yet; consumers must handle
// that fourth case themselves.
package result

type state int

const (
	stateLoading state = iota
	stateSuccess
	stateFailure
)

// Result is immutable once constructed. Success holds exactly one
// value; Failure holds the error that caused it.
type Result[T any] struct {
	st  state
	val T
	err error
}

func Loading[T any]() *Result[T] { return &Result[T]{st: stateLoading} }

func Success[T any](v T) *Result[T] { return &Result[T]{st: stateSuccess, val: v} }

func Failure[T any](err error) *Result[T] { return &Result[T]{st: stateFailure, err: err} }

func (r *Result[T]) IsLoading() bool { return r != nil && r.st == stateLoading }
func (r *Result[T]) IsSuccess() bool { return r != nil && r.st == stateSuccess }
func (r *Result[T]) IsFailure() bool { return r != nil && r.st == stateFailure }

// Value returns the success payload, or the zero value and false for
// nil, loading and failure results.
func (r *Result[T]) Value() (T, bool) {
	if r == nil || r.st != stateSuccess {
		var zero T
		return zero, false
	}
	return r.val, true
}

// Err returns the failure cause, nil otherwise.
func (r *Result[T]) Err() error {
	if r == nil || r.st != stateFailure {
		return nil
	}
	return r.err
}

// Message returns the failure cause as text for display. Empty for
// anything that is not a failure, or for a failure without a cause.
func (r *Result[T]) Message() string {
	if err := r.Err(); err != nil {
		return err.Error()
	}
	return ""
}
