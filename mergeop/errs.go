package mergeop

import (
	"errors"
	"fmt"
)

var (
	ErrMerge       = errors.New("merge error")
	ErrPlaceholder = fmt.Errorf("%w: overlay placeholder outside of an overlay", ErrMerge)
	ErrKeyStrategy = fmt.Errorf("%w: key strategy in merged document", ErrMerge)
)

// MergeError locates an error in a document.
type MergeError struct {
	Path string
	Err  error
}

func (e *MergeError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
