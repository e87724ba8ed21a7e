package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptySource     = errors.New("catalog source is empty")
	ErrBadPayload      = errors.New("catalog payload is not a product array")
	ErrUnexpectedHTTP  = errors.New("unexpected catalog response status")
)

// LoadError reports a failed catalog fetch or decode. The store stays empty.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load from %s failed: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
