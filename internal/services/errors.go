package services

import "errors"

var (
	// ErrValidation wraps every missing or malformed input field
	ErrValidation = errors.New("validation failed")
	// ErrNotLoggedIn is returned when an operation needs a session and there is none
	ErrNotLoggedIn = errors.New("user must be logged in")
	// ErrNoActiveDog is returned when swiping without an active dog profile
	ErrNoActiveDog = errors.New("user must have a current dog")
	// ErrDogNotFound is returned for dogs the user does not own
	ErrDogNotFound = errors.New("dog not found")
	// ErrMatchNotFound is returned for matches the user is not part of
	ErrMatchNotFound = errors.New("match not found")
	// ErrEmailTaken is returned when signing up with a registered email
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMediaDisabled is returned when no photo bucket is configured
	ErrMediaDisabled = errors.New("photo uploads are not configured")
)
