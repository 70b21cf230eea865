// Package apperrors defines the error taxonomy shared by services and
// handlers. Every business failure is a *Error carrying the category, the
// HTTP status it maps to, and a stable machine-readable code.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Category string

const (
	CategoryValidation Category = "validation"
	CategoryConflict   Category = "conflict"
	CategoryBusiness   Category = "business"
	CategoryNotFound   Category = "not_found"
	CategoryForbidden  Category = "forbidden"
	CategoryTransient  Category = "transient"
)

type Error struct {
	Category   Category
	StatusCode int
	Code       string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is a transient infrastructure error.
// Only this class is eligible for automatic retry; everything else is
// terminal for the request.
func (e *Error) Retryable() bool {
	return e.Category == CategoryTransient
}

// As extracts a *Error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NewValidation(code, message string, cause error) *Error {
	return &Error{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       code,
		Message:    message,
		Cause:      cause,
	}
}

func NewConflict(code, message string) *Error {
	return &Error{
		Category:   CategoryConflict,
		StatusCode: http.StatusConflict,
		Code:       code,
		Message:    message,
	}
}

func NewNotFound(resource string) *Error {
	return &Error{
		Category:   CategoryNotFound,
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
	}
}

func NewForbidden(code, message string) *Error {
	return &Error{
		Category:   CategoryForbidden,
		StatusCode: http.StatusForbidden,
		Code:       code,
		Message:    message,
	}
}

func NewTransient(message string, cause error) *Error {
	return &Error{
		Category:   CategoryTransient,
		StatusCode: http.StatusServiceUnavailable,
		Code:       "STORAGE_UNAVAILABLE",
		Message:    message,
		Cause:      cause,
	}
}

// Registry and ledger business errors.
var (
	ErrInvalidPlate = NewValidation("INVALID_PLATE", "plate number is not a recognized format", nil)

	ErrAlreadyRegisteredBySelf  = NewConflict("PLATE_ALREADY_REGISTERED_SELF", "you have already registered this plate")
	ErrAlreadyRegisteredByOther = NewConflict("PLATE_ALREADY_REGISTERED", "this plate is registered by another owner")

	ErrVehicleNotFound = NewNotFound("vehicle")
	ErrOwnerNotFound   = NewNotFound("owner")
	ErrAccountNotFound = NewNotFound("ledger account")
	ErrNotOwner        = NewForbidden("NOT_OWNER", "only the vehicle's owner may do this")

	ErrInsufficientBalance = &Error{
		Category:   CategoryBusiness,
		StatusCode: http.StatusPaymentRequired,
		Code:       "INSUFFICIENT_BALANCE",
		Message:    "not enough credits for this action",
	}
	ErrNotContactable = &Error{
		Category:   CategoryBusiness,
		StatusCode: http.StatusConflict,
		Code:       "NOT_CONTACTABLE",
		Message:    "the owner has not enabled any contact method",
	}

	ErrInvalidReferralCode  = NewValidation("INVALID_REFERRAL_CODE", "referral code must be 8 uppercase letters or digits", nil)
	ErrReferralCodeNotFound = NewNotFound("referral code")
	ErrSelfReferral         = NewValidation("SELF_REFERRAL", "you cannot apply your own referral code", nil)
	ErrReferralAlreadyUsed  = NewConflict("REFERRAL_ALREADY_APPLIED", "a referral code was already applied to this account")
)
