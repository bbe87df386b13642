package compare

import (
	"errors"
	"fmt"
)

// ErrRelativeURL is wrapped by MalformedURLError when a run URL has no scheme.
var ErrRelativeURL = errors.New("url is not absolute")

// MalformedReportError is returned when a run's serialized report cannot be decoded.
type MalformedReportError struct {
	URL string
	Err error
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("malformed report for %s: %v", e.URL, e.Err)
}

func (e *MalformedReportError) Unwrap() error { return e.Err }

// MalformedURLError is returned when a page key cannot be derived from a run URL.
type MalformedURLError struct {
	URL string
	Err error
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("malformed url %q: %v", e.URL, e.Err)
}

func (e *MalformedURLError) Unwrap() error { return e.Err }
