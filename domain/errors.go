package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrUnauthorized will throw if the request carries no identity
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden will throw if the identity may not perform the mutation
	ErrForbidden = errors.New("you can only delete your own comments")
	// ErrReplyToReply will throw when a reply targets another reply
	ErrReplyToReply = errors.New("cannot reply to a reply")
)
