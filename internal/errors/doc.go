// Package errors defines error types for the reqval plugin and host harness.
//
// This package provides sentinel errors for the set-message validation ladder
// and structured error types for instantiation failures. All error types
// support unwrapping and can be checked with errors.Is and errors.As.
package errors
