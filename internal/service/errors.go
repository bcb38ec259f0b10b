package service

import (
	"errors"
	"fmt"
)

// Kinds. Every error below wraps exactly one of them; the transport maps kinds to status codes.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrMenuItemNotFound = fmt.Errorf("menu item %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)

	ErrPhoneTaken     = fmt.Errorf("%w: phone already belongs to another customer", ErrConflict)
	ErrComandaClosed  = fmt.Errorf("%w: comanda is closed", ErrConflict)
	ErrMesaContention = fmt.Errorf("%w: could not settle the open comanda for this mesa, try again", ErrConflict)
)

var (
	ErrEmptyItems           = fmt.Errorf("%w: order has no items", ErrValidation)
	ErrQuantityInvalid      = fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	ErrInvalidOrderType     = fmt.Errorf("%w: unknown order type", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: unknown order status", ErrValidation)
	ErrInvalidPayment       = fmt.Errorf("%w: unknown payment status", ErrValidation)
	ErrInvalidComandaStatus = fmt.Errorf("%w: unknown comanda status", ErrValidation)
	ErrInvalidMesa          = fmt.Errorf("%w: mesa must be a positive integer", ErrValidation)
	ErrNotComanda           = fmt.Errorf("%w: order is not a comanda", ErrValidation)
	ErrItemInactive         = fmt.Errorf("%w: menu item is inactive", ErrValidation)
	ErrItemUnavailable      = fmt.Errorf("%w: menu item is not available for this order type", ErrValidation)
	ErrCustomerRequired     = fmt.Errorf("%w: customer name or phone is required", ErrValidation)
	ErrPhoneRequired        = fmt.Errorf("%w: phone is required", ErrValidation)
	ErrNameRequired         = fmt.Errorf("%w: name is required", ErrValidation)
	ErrCategoryRequired     = fmt.Errorf("%w: category is required", ErrValidation)
	ErrPriceRequired        = fmt.Errorf("%w: price is required", ErrValidation)
	ErrPriceNegative        = fmt.Errorf("%w: price must be >= 0", ErrValidation)
	ErrInvalidID            = fmt.Errorf("%w: malformed id", ErrValidation)
)

// ValidationError points a validation failure at the offending input field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
