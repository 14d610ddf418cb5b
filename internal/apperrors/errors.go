package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller lacks the capability required by
// the operation. Never retried automatically.
var ErrUnauthorized = errors.New("caller lacks required capability")

// ErrConflict indicates that the operation cannot be applied to the current
// state (supply cap reached, insufficient funds, one-time step repeated).
// These are expected steady-state conditions callers handle as control flow,
// not bugs.
var ErrConflict = errors.New("operation conflicts with current state")
