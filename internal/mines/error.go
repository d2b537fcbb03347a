package mines

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrOutOfBounds          = errors.New("cell out of bounds")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// panics [AssertionError]
func must(cond bool, message string) {
	if !cond {
		Log.WithField("assertion", message).Error("assertion failed")
		panic(AssertionError{message})
	}
}

// recoverAssertion turns an [AssertionError] panic into an error stored in
// err. Any other panic is re-raised.
func recoverAssertion(err *error) {
	r := recover()
	if r == nil {
		return
	}
	var ae AssertionError
	if e, ok := r.(error); ok && errors.As(e, &ae) {
		*err = ae
		return
	}
	panic(r)
}
