package webpage

import (
	"errors"
	"io/fs"

	"finitefield.org/hanko-docs/internal/guides"
	"finitefield.org/hanko-docs/internal/view"
)

// NotFoundError marks a failure that should be answered with 404.
type NotFoundError struct {
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return "not found"
	}
	return "not found: " + e.Err.Error()
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// isDomainFailure lists the lookup failures that mean "no such page".
func isDomainFailure(err error) bool {
	return errors.Is(err, guides.ErrNotFound) ||
		errors.Is(err, guides.ErrInvalidProduct) ||
		errors.Is(err, fs.ErrNotExist)
}

// InvariantTo404 runs fn and converts lookup failures into *NotFoundError.
// Other errors pass through unchanged.
func InvariantTo404(fn func() (*view.Node, error)) (*view.Node, error) {
	n, err := fn()
	if err == nil {
		return n, nil
	}
	if IsNotFound(err) {
		return nil, err
	}
	if isDomainFailure(err) {
		return nil, &NotFoundError{Err: err}
	}
	return nil, err
}
