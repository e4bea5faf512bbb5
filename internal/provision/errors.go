package provision

import "errors"

// pullFailedError signals that a model was not present and could not be fetched.
type pullFailedError struct {
	model string
	err   error
}

func (e pullFailedError) Error() string {
	return "model " + e.model + " is not available and pull failed: " + e.err.Error()
}

func (e pullFailedError) Unwrap() error { return e.err }

// IsPullFailed reports whether err came from a failed pull.
func IsPullFailed(err error) bool {
	var pf pullFailedError
	return errors.As(err, &pf)
}

// invalidHandleError signals that a handle could not be constructed.
type invalidHandleError struct{ msg string }

func (e invalidHandleError) Error() string { return "invalid model handle: " + e.msg }

// IsInvalidHandle reports whether err came from handle construction.
func IsInvalidHandle(err error) bool {
	var ih invalidHandleError
	return errors.As(err, &ih)
}

// ErrModelUnavailable is returned by a nil Handle.
var ErrModelUnavailable = errors.New("model not loaded")

// IsModelUnavailable reports whether err indicates there is no model to serve.
func IsModelUnavailable(err error) bool { return errors.Is(err, ErrModelUnavailable) }
