package domain

import "github.com/pkg/errors"

var (
	// ErrMissingField a required field is not set on insert
	ErrMissingField = errors.New("required field missing")
	// ErrUnknownField criteria references a field the entity does not have
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownAssociation criteria requests an association the entity does not have
	ErrUnknownAssociation = errors.New("unknown association")
	// ErrInvalidID id is not 32 hex characters
	ErrInvalidID = errors.New("invalid id")
)

// StoreError wraps every persistence failure of a repository
// StoreError 存储层错误
type StoreError struct {
	Entity string
	Op     string
	Err    error
}

func NewStoreError(entity, op string, err error) *StoreError {
	return &StoreError{Entity: entity, Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return e.Op + " " + e.Entity + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
