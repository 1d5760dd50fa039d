package repo

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate value")
	// ErrReference is returned when a reference column points at a missing row.
	ErrReference = errors.New("referenced record does not exist")
)

// DuplicateError reports which unique column rejected a write.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicate, e.Field)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }
