package services

import "errors"

// Domain errors returned by the services. The API layer decides which of
// these surface as data on the result object and which become faults.
var (
	// ErrNotFound signals a lookup by id that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken signals a registration against an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrLoginFailed covers both unknown-username and wrong-password so the
	// login endpoint cannot be used to probe for usernames.
	ErrLoginFailed = errors.New("Login failed")

	// ErrNotOwner signals a mutation attempted by someone other than the
	// post's owner.
	ErrNotOwner = errors.New("requester does not own this post")

	// ErrEmptyContent signals a post create/update with no content.
	ErrEmptyContent = errors.New("post content must not be empty")
)
