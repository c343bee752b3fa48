package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrMalformedAPIKey       = errors.New("malformed API key")
	ErrMissingUsername       = errors.New("password provided without username; specify username")
	ErrMissingPassword       = errors.New("no password supplied")
	ErrMissingCredentials    = errors.New("no credentials supplied")
	ErrOperationNotCompleted = errors.New("operation did not complete")
)

// ConflictingCredentialsError reports the same credential field supplied
// both as a command-line argument and embedded in the URL. Both values are
// preserved so the message can name them; neither is ever silently
// preferred.
type ConflictingCredentialsError struct {
	Field     string
	FlagValue string
	URLValue  string
}

func (e *ConflictingCredentialsError) Error() string {
	return fmt.Sprintf(
		"%s provided on command-line (%q) and in URL (%q); provide only one",
		e.Field, e.FlagValue, e.URLValue)
}
