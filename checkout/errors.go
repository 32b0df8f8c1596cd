package checkout

import (
	"errors"
	"fmt"
)

// ErrorKind classifies checkout pipeline failures.
type ErrorKind string

const (
	KindOrderFetch      ErrorKind = "order_fetch"
	KindOrderIDMismatch ErrorKind = "order_id_mismatch"
	KindProductLookup   ErrorKind = "product_lookup"
	KindPaymentFetch    ErrorKind = "payment_fetch"
	KindPaymentCreation ErrorKind = "payment_creation"
)

// Fatal reports whether the kind stops the pipeline of its generation.
func (k ErrorKind) Fatal() bool {
	return k != KindProductLookup
}

var (
	// ErrSuperseded is returned by pipeline steps whose generation is no longer
	// current. It is never surfaced to the user.
	ErrSuperseded = errors.New("checkout: generation superseded")

	// ErrSessionClosed is returned when selecting on a session after Close.
	ErrSessionClosed = errors.New("checkout: session closed")
)

// Error is a checkout failure bound to one order.
type Error struct {
	Kind    ErrorKind
	OrderID string
	Message string
	Err     error
}

func newError(kind ErrorKind, orderID, message string, err error) *Error {
	return &Error{Kind: kind, OrderID: orderID, Message: message, Err: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (order %s): %s: %v", e.Kind, e.OrderID, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (order %s): %s", e.Kind, e.OrderID, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a checkout error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}
