package storage

import (
	"errors"
	"fmt"
)

// Op tags a StorageError with the operation that failed, for diagnostics.
type Op string

const (
	OpValidation   Op = "validation"
	OpParse        Op = "parse"
	OpGet          Op = "get"
	OpSet          Op = "set"
	OpRemove       Op = "remove"
	OpClear        Op = "clear"
	OpSpace        Op = "space"
	OpVerification Op = "verification"
)

// StorageError is the failure type for every adapter operation.
type StorageError struct {
	Op      Op
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsOp reports whether err is a StorageError tagged with op.
func IsOp(err error, op Op) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Op == op
}
