package utils

import "errors"

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrRouteNotFound       = errors.New("route not found")
	ErrStopNotFound        = errors.New("route stop not found")
	ErrAttractionNotFound  = errors.New("attraction not found")
	ErrTripNotFound        = errors.New("trip not found")
	ErrAccountNotFound     = errors.New("account not found")

	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrCapacityExceeded     = errors.New("release would exceed destination capacity")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidReference     = errors.New("invalid reference")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")

	ErrConflict            = errors.New("conflict")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrReviewAlreadyExists = errors.New("review already exists")

	ErrDatabaseError = errors.New("database error")
)

var notFoundErrors = []error{
	ErrDestinationNotFound,
	ErrBookingNotFound,
	ErrRouteNotFound,
	ErrStopNotFound,
	ErrAttractionNotFound,
	ErrTripNotFound,
	ErrAccountNotFound,
}

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsDomainError reports whether err is one of the sentinels above other than
// ErrDatabaseError. Services pass these through untouched.
func IsDomainError(err error) bool {
	if err == nil || errors.Is(err, ErrDatabaseError) {
		return false
	}
	if IsNotFound(err) {
		return true
	}
	for _, target := range []error{
		ErrForbidden, ErrUnauthorized, ErrInvalidCredentials, ErrInsufficientCapacity,
		ErrCapacityExceeded, ErrInvalidInput, ErrInvalidReference, ErrInvalidPage,
		ErrInvalidPageSize, ErrConflict, ErrEmailAlreadyExists, ErrReviewAlreadyExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
