package errors

import (
	"errors"
	"runtime"

	errorsGo "github.com/go-errors/errors"
)

var ErrUnsupported = errors.ErrUnsupported

func As(err error, target any) bool { return errorsGo.As(err, target) }

func Is(err, target error) bool { return errorsGo.Is(err, target) }

func Join(errs ...error) error {
	// not implemented by github.com/go-errors/errors
	if err := errorsGo.Join(errs...); err != nil {
		if errGo, okErrGo := err.(*errorsGo.Error); okErrGo {
			return errGo
		}
		return errorsGo.Wrap(err, 1)
	}
	return nil
}

// New wraps obj with a stack trace. Use it in return position only:
// a nil obj yields a nil *Error, which is not a nil error interface.
func New(obj any) *Error {
	if obj == nil {
		return nil
	}
	// don't overwrite origin of failure
	if errGo, okErrGo := obj.(*errorsGo.Error); okErrGo {
		return errGo
	}
	return errorsGo.Wrap(obj, 1)
}

func Unwrap(err error) error { return errorsGo.Unwrap(err) }

type Error = errorsGo.Error

func Errorf(format string, a ...any) *Error { return errorsGo.Errorf(format, a...) }

func Wrap(e any, skip int) *Error { return errorsGo.Wrap(e, skip+1) }

// NilReceiver returns an error with the function name if any of the arguments are nil
func NilReceiver(args ...any) error {
	return errMsgNilTester(`nil receiver or struct field`, 3, args...)
}

// NilParam returns an error with the function name if any of the arguments are nil
func NilParam(args ...any) error {
	return errMsgNilTester(`nil parameter`, 3, args...)
}

func errMsgNilTester(msg string, skip int, args ...any) error {
	if len(args) == 0 {
		return errMsg(msg, skip)
	}
	for i := range args {
		if args[i] == nil {
			return errMsg(msg, skip)
		}
	}
	return nil
}

func errMsg(msg string, skip int) error {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return Wrap(msg, skip)
	}
	return Wrap(msg+`: `+runtime.FuncForPC(pc).Name()+`()`, skip)
}
