package grace

import "fmt"

// ActionableError is an operator-facing failure that names what was
// expected, what actually happened, and what to do about it.
type ActionableError struct {
	Expected     string
	Got          string
	CallToAction string
}

func (e *ActionableError) Error() string {
	return fmt.Sprintf("expected: %s, got: %s; what to do: %s", e.Expected, e.Got, e.CallToAction)
}

func RaiseError(expected, got, callToAction string) error {
	return &ActionableError{
		Expected:     expected,
		Got:          got,
		CallToAction: callToAction,
	}
}
