package errcode

import (
	"fmt"

	"github.com/pkg/errors"
)

// ClassifiedError ties an operation failure to the ErrCode describing it.
// Errors carrying an ErrCode are reported as a single operator-facing line;
// anything else is treated as unexpected and reported with full detail.
type ClassifiedError struct {
	Code ErrCode
	Err  error
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// New wraps err with the given error code. A nil err yields nil.
func New(code ErrCode, err error) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{Code: code, Err: err}
}

// Newf classifies a freshly formatted error under the given code.
func Newf(code ErrCode, format string, args ...interface{}) error {
	return &ClassifiedError{Code: code, Err: errors.Errorf(format, args...)}
}

// Classify reports the ErrCode carried by err, if any.
func Classify(err error) (ErrCode, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return ErrCode(0), false
}
