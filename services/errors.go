package services

import (
	"errors"
	"net/http"
)

// APIError mirrors the {status, msg} contract the HTTP layer exposes: every
// expected failure in a service maps onto one of these, and the controllers
// translate it verbatim. Anything else is an internal error.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string { return e.Msg }

var (
	ErrNoToken             = &APIError{http.StatusUnauthorized, "No token"}
	ErrInvalidToken        = &APIError{http.StatusForbidden, "Expired or invalid token"}
	ErrNoRefreshToken      = &APIError{http.StatusUnauthorized, "No refresh token"}
	ErrInvalidRefreshToken = &APIError{http.StatusForbidden, "Invalid or expired refresh token"}
	ErrNoUserID            = &APIError{http.StatusBadRequest, "No user id"}
	ErrNoActiveSession     = &APIError{http.StatusUnauthorized, "No active session"}

	ErrMissingFields = &APIError{http.StatusBadRequest, "Missing required fields"}
	// A malformed user id reads the same as a missing user on purpose: the
	// response must not reveal which ids are syntactically plausible.
	ErrBadUserID        = &APIError{http.StatusBadRequest, "User not found"}
	ErrUserNotFound     = &APIError{http.StatusNotFound, "User not found"}
	ErrInvalidDate      = &APIError{http.StatusBadRequest, "Invalid date"}
	ErrInvalidNutrients = &APIError{http.StatusBadRequest, "Invalid nutrient values"}
	ErrNoIntakeFound    = &APIError{http.StatusNotFound, "No intake found for the given userID and date"}
	ErrInvalidIndex     = &APIError{http.StatusBadRequest, "Invalid intake index"}

	ErrMissingTokenOrEmail  = &APIError{http.StatusBadRequest, "Missing token or email"}
	ErrInvalidVerifyAttempt = &APIError{http.StatusBadRequest, "Invalid verification attempt"}
	ErrAlreadyVerified      = &APIError{http.StatusBadRequest, "Email already verified"}
	ErrVerifyTokenInvalid   = &APIError{http.StatusBadRequest, "Invalid or expired verification token"}

	ErrBadCredentials = &APIError{http.StatusUnauthorized, "Incorrect email or password"}
)

// The empty rollups are not APIErrors: the endpoints answer 200 with an
// explanatory message, so controllers match these sentinels directly.
var (
	ErrEmptyWeek     = errors.New("no intakes registered for this week")
	ErrNoIntakesEver = errors.New("no intake has ever been registered")
)
