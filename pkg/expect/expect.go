// Package expect holds small contract checks that turn a violated
// expectation into an *ExpectationFailed error.
package expect

import "errors"

// ErrExpectationFailed matches every *ExpectationFailed via errors.Is.
var ErrExpectationFailed = errors.New("expectation failed")

type ExpectationFailed struct {
	Message string
}

func (e *ExpectationFailed) Error() string { return e.Message }

func (e *ExpectationFailed) Is(target error) bool { return target == ErrExpectationFailed }

func fail(def string, msg []string) error {
	if len(msg) > 0 && msg[0] != "" {
		return &ExpectationFailed{Message: msg[0]}
	}
	return &ExpectationFailed{Message: def}
}

// Expect returns nil when v holds.
func Expect(v bool, msg ...string) error {
	if v {
		return nil
	}
	return fail("Expectation failed", msg)
}

// That returns v unchanged when pred accepts it.
func That[T any](v T, pred func(T) bool, msg ...string) (T, error) {
	if pred(v) {
		return v, nil
	}
	var zero T
	return zero, fail("Expectation failed", msg)
}
