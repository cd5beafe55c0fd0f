package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so callers can tell a failed call
// apart from a legitimate empty result, and pick the right surface for it.
type ErrorKind string

const (
	// ErrConfiguration: missing backend URL or server key. Fatal for the
	// session, shown as a persistent banner, never retried.
	ErrConfiguration ErrorKind = "configuration"
	// ErrNetwork: transport-level failure reaching a backend.
	ErrNetwork ErrorKind = "network"
	// ErrUpstreamProvider: a third-party API answered with a non-success
	// status; the provider's message is wrapped in.
	ErrUpstreamProvider ErrorKind = "upstream_provider"
	// ErrMalformedResponse: text-generation output failed JSON extraction,
	// parsing, or the shape check. Raw carries the original text.
	ErrMalformedResponse ErrorKind = "malformed_response"
	// ErrPermissionDenied: location access refused; the pipeline halts for
	// the session until resolved.
	ErrPermissionDenied ErrorKind = "permission_denied"
)

// PipelineError is the error type produced by the discovery pipeline.
// Mock-mode code paths never produce Network, UpstreamProvider or
// MalformedResponse kinds.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	// Raw holds the unparseable upstream text for diagnostics. Only set
	// for MalformedResponse and UpstreamProvider kinds.
	Raw string
	Err error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error { return e.Err }

func ConfigurationError(message string) *PipelineError {
	return &PipelineError{Kind: ErrConfiguration, Message: message}
}

func NetworkError(message string, err error) *PipelineError {
	return &PipelineError{Kind: ErrNetwork, Message: message, Err: err}
}

func UpstreamError(message, raw string) *PipelineError {
	return &PipelineError{Kind: ErrUpstreamProvider, Message: message, Raw: raw}
}

func MalformedResponseError(message, raw string) *PipelineError {
	return &PipelineError{Kind: ErrMalformedResponse, Message: message, Raw: raw}
}

func PermissionDeniedError(message string) *PipelineError {
	return &PipelineError{Kind: ErrPermissionDenied, Message: message}
}

// IsKind reports whether err is a *PipelineError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *PipelineError
	return errors.As(err, &pe) && pe.Kind == kind
}
