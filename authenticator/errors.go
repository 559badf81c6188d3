package authenticator

import (
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned when a provider id is not registered
var ErrUnknownProvider = errors.New("unknown identity provider")

// AuthConfigurationError reports a missing credential or token. It is a
// programming or configuration fault and is never retried.
type AuthConfigurationError struct {
	Op  string
	Msg string
}

func (e *AuthConfigurationError) Error() string {
	if e.Op == "" {
		return "auth configuration: " + e.Msg
	}
	return fmt.Sprintf("%s: auth configuration: %s", e.Op, e.Msg)
}

// UpstreamIdentityError reports a network failure or a non-success response
// from the identity provider.
type UpstreamIdentityError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamIdentityError) Error() string {
	msg := e.Op + ": identity provider"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" returned status %d", e.StatusCode)
	} else {
		msg += " request failed"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamIdentityError) Unwrap() error {
	return e.Err
}

// IsAuthConfigurationError reports whether err is or wraps an AuthConfigurationError
func IsAuthConfigurationError(err error) bool {
	var target *AuthConfigurationError
	return errors.As(err, &target)
}

// IsUpstreamIdentityError reports whether err is or wraps an UpstreamIdentityError
func IsUpstreamIdentityError(err error) bool {
	var target *UpstreamIdentityError
	return errors.As(err, &target)
}
