package domain

import "fmt"

// FailureKind classifies why an account backend call did not succeed.
type FailureKind string

const (
	// FailureRejected means the backend answered and refused the request (status "fail").
	FailureRejected FailureKind = "rejected"
	// FailureUnauthorized means the session was missing, expired or refused.
	FailureUnauthorized FailureKind = "unauthorized"
	// FailureTransport covers network errors, timeouts and cancellation.
	FailureTransport FailureKind = "transport"
	// FailureUnexpected covers non-2xx answers and malformed bodies.
	FailureUnexpected FailureKind = "unexpected"
)

// Failure is the error half of a Result.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f Failure) Error() string {
	if f.Message == "" {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Empty is the value of calls that only report success.
type Empty struct{}

// Result is the outcome of a gateway call: either a value or a classified failure.
type Result[T any] struct {
	ok      bool
	value   T
	failure Failure
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

// Fail builds a failed result of the given kind.
func Fail[T any](kind FailureKind, message string) Result[T] {
	return Result[T]{failure: Failure{Kind: kind, Message: message}}
}

// Failed re-types a failure, e.g. to forward it from another call.
func Failed[T any](f Failure) Result[T] {
	return Result[T]{failure: f}
}

func (r Result[T]) OK() bool { return r.ok }

// Value returns the wrapped value; it is the zero value on failure.
func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Failure() Failure { return r.failure }

// Err returns nil on success and the Failure otherwise.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return r.failure
}
