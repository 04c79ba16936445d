package service

import (
	"github.com/haierkeys/product-note-service/pkg/code"
)

// ValidationError is a user-correctable input error raised before any write.
// It unwraps to the matching pkg/code error so handlers can respond with its message.
// ValidationError 参数校验错误
type ValidationError struct {
	Field string
	Rule  string
	Code  *code.Code
}

func (e *ValidationError) Error() string {
	return e.Code.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Code
}
