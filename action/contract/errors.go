package contract

import "errors"

var (
	ErrUnknownAction  = errors.New("no registered action")
	ErrMissingAction  = errors.New("next_action is empty")
	ErrInvalidRequest = errors.New("invalid action request")
	ErrDuplicateName  = errors.New("action already registered")
)
