package models

import (
	"errors"
	"fmt"
)

// ErrTermExists marks a term creation rejected because the name is already
// taken. Recoverable: the resolver keeps going instead of failing the batch.
var ErrTermExists = errors.New("term already exists")

// ConfigError - channel configuration is missing required fields.
// Never retried; surfaced verbatim to the user.
type ConfigError struct {
	Platform Platform
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("channel config (%s): %s", e.Platform, e.Reason)
}

// UploadError - a single media item failed to fetch or upload.
// Body carries the platform's raw error response when there is one.
type UploadError struct {
	Filename   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UploadError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upload %s: %d - %s", e.Filename, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upload %s: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// TermResolutionError - taxonomy lookup or creation failed. The publisher
// reacts by publishing without taxonomy, not by aborting.
type TermResolutionError struct {
	TermType TermType
	Err      error
}

func (e *TermResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.TermType, e.Err)
}

func (e *TermResolutionError) Unwrap() error { return e.Err }

// PublishError - the create-content call failed on both the primary and
// the no-taxonomy fallback attempt.
type PublishError struct {
	Primary  error
	Fallback error
}

func (e *PublishError) Error() string {
	if e.Fallback != nil {
		return fmt.Sprintf("create content failed: %v; retry without taxonomy failed: %v", e.Primary, e.Fallback)
	}
	return fmt.Sprintf("create content failed: %v", e.Primary)
}

func (e *PublishError) Unwrap() error { return e.Primary }
