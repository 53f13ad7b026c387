package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested delivery does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists indicates that a delivery for the order is already registered.
var ErrAlreadyExists = errors.New("delivery already exists")

// ErrAlreadyAssigned indicates that the delivery already has an agent.
var ErrAlreadyAssigned = errors.New("driver already assigned")

// ErrAlreadyCompleted indicates that the delivery is already delivered.
var ErrAlreadyCompleted = errors.New("delivery already completed")

// ErrAlreadyCanceled indicates that the delivery is already canceled.
var ErrAlreadyCanceled = errors.New("delivery already canceled")

// ErrInvalidTransition indicates a status change the state machine does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")
