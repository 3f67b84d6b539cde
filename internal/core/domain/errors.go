package domain

import "errors"

var ErrAlreadyExists = errors.New("email already registered")
var ErrNotFound = errors.New("email not found")
var ErrInvalidCredentials = errors.New("email or password invalid")

// ErrPersistence marks a failure of the user store. Adapters join it with the
// underlying cause so both stay reachable through errors.Is / errors.As.
var ErrPersistence = errors.New("persistence failure")
