package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("permission denied")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate value")
)

const (
	msgRequired      = "Обязательное поле."
	msgInvalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."
	msgPhoneTaken    = "Этот номер телефона уже используется"
)

// ValidationError maps field names to human readable messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateError is returned when a unique field already holds the value.
type DuplicateError struct {
	Field   string
	Message string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicate, e.Field)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
