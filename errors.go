package reqval

import "github.com/lv2go/reqval/internal/errors"

// Re-export error types from internal package

// FeatureNotFoundError indicates a required host capability was absent at
// instantiation.
type FeatureNotFoundError = errors.FeatureNotFoundError

// ManifestError indicates the declarative plugin metadata failed to load or
// validate.
type ManifestError = errors.ManifestError

// ReqvalError is the base interface for all errors produced by this module.
type ReqvalError = errors.ReqvalError

// Re-export sentinel errors from internal package.
var (
	// ErrMissingProperty indicates a set message without a property field.
	ErrMissingProperty = errors.ErrMissingProperty

	// ErrWrongPropertyType indicates a property field that is not URID-typed.
	ErrWrongPropertyType = errors.ErrWrongPropertyType

	// ErrMissingValue indicates a set message without a value field.
	ErrMissingValue = errors.ErrMissingValue

	// ErrUnknownProperty indicates a property token no declared parameter matches.
	ErrUnknownProperty = errors.ErrUnknownProperty

	// ErrWrongValueType indicates a value whose type does not match the parameter.
	ErrWrongValueType = errors.ErrWrongValueType

	// ErrInvalidPort indicates a buffer of the wrong type for a port index.
	ErrInvalidPort = errors.ErrInvalidPort
)
