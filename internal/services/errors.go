package services

import "errors"

// Validation and lookup failures. None of them change stored state.
var (
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("product name is required and price cannot be negative")
	ErrNotEditing      = errors.New("no product is being edited")
	ErrMissingQuantity = errors.New("please enter a quantity")

	ErrInvalidScopeToken = errors.New("invalid scope token")
)
