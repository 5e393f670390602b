package booking

import (
	"context"
	"errors"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindNetwork       Kind = "network"
	KindStoreRejected Kind = "store_rejected"
)

// Error tags a failure at the data-access boundary with its kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + string(e.Kind)
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NetworkError(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func RejectedError(op string, err error) error {
	return &Error{Kind: KindStoreRejected, Op: op, Err: err}
}

func ValidationError(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

// KindOf reports the kind of err. Untagged errors count as network failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindNetwork
}

// IsTimeout reports whether err came from an expired or cancelled context.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
