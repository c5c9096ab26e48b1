package insight

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a bad caller-supplied parameter, like an empty
// community name or an out-of-range limit.
type InvalidInputError struct {
	Param  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// AuthenticationError reports missing or rejected forum credentials.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// FetchError reports a network or service failure while fetching posts.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ModelInitError reports that a classifier backend could not be initialized.
// It is fatal for the run and never retried.
type ModelInitError struct {
	Err error
}

func (e *ModelInitError) Error() string {
	return fmt.Sprintf("model initialization failed: %v", e.Err)
}

func (e *ModelInitError) Unwrap() error { return e.Err }

// ClassificationError reports that a batch classification call failed as a
// whole; no partial results exist when it is returned.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// UserMessage turns a pipeline error into the short human-readable message a
// caller surfaces, so users know whether to fix their input, check
// credentials, or just retry later.
func UserMessage(err error) string {
	var invalid *InvalidInputError
	var auth *AuthenticationError
	var fetch *FetchError
	var modelInit *ModelInitError
	var classification *ClassificationError

	switch {
	case errors.As(err, &invalid):
		return "Bad input: " + invalid.Error()
	case errors.As(err, &auth):
		return "Could not authenticate with Reddit. Check your credentials."
	case errors.As(err, &fetch):
		return "Could not reach Reddit. Try again later."
	case errors.As(err, &modelInit):
		return "Sentiment model could not be initialized."
	case errors.As(err, &classification):
		return "Sentiment analysis failed. Try again later."
	default:
		return "An unexpected error occurred."
	}
}
