package errors

import (
	"errors"
	"fmt"
)

// ReqvalError is the base interface for all errors produced by this module.
type ReqvalError interface {
	error
	IsReqvalError() bool
}

// Compile-time verification that all error types implement ReqvalError.
var (
	_ ReqvalError = (*FeatureNotFoundError)(nil)
	_ ReqvalError = (*ManifestError)(nil)
)

// Sentinel errors for set-message validation failures.
//
// A malformed set message is never fatal: the plugin logs the failure,
// discards the message, and keeps processing. These sentinels let tests and
// hosts distinguish the discard reasons with errors.Is.
var (
	// ErrMissingProperty indicates a set message without a property field.
	ErrMissingProperty = errors.New("set message has no property")

	// ErrWrongPropertyType indicates a property field that is not URID-typed.
	ErrWrongPropertyType = errors.New("set message has non-URID property")

	// ErrMissingValue indicates a set message without a value field.
	ErrMissingValue = errors.New("set message has no value")

	// ErrUnknownProperty indicates a property token no declared parameter matches.
	ErrUnknownProperty = errors.New("set message for unknown property")

	// ErrWrongValueType indicates a value whose type does not match the parameter.
	ErrWrongValueType = errors.New("invalid value type for property")
)

// Sentinel errors for port wiring and host lifecycle.
var (
	// ErrInvalidPort indicates a buffer of the wrong type for a port index.
	ErrInvalidPort = errors.New("invalid buffer type for port")

	// ErrHostClosed indicates the host harness has been closed and cannot be reused.
	ErrHostClosed = errors.New("host closed: hosts are single-use, create a new one with New()")
)

// FeatureNotFoundError indicates a required host capability was absent at
// instantiation. Instantiation aborts; there is no degraded mode.
type FeatureNotFoundError struct {
	URI string
}

func (e *FeatureNotFoundError) Error() string {
	return fmt.Sprintf("host does not support required feature %s", e.URI)
}

// IsReqvalError implements ReqvalError.
func (e *FeatureNotFoundError) IsReqvalError() bool { return true }

// ManifestError indicates the declarative plugin metadata failed to load or
// validate.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid manifest: %v", e.Err)
	}

	return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// IsReqvalError implements ReqvalError.
func (e *ManifestError) IsReqvalError() bool { return true }
