// Package errors provides custom error types for the heritage pipeline.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the heritage pipeline
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingInput indicates that a required input file is absent
	ErrMissingInput = errors.New("missing input")

	// ErrPartialPublish indicates that only some publish destinations were written
	ErrPartialPublish = errors.New("partial publish")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ValidationFailedError represents a dataset that failed invariant checks.
// It carries the violation counts; the individual issues are reported by
// the validator before this error is returned.
type ValidationFailedError struct {
	Violations int
	Warnings   int
}

// Error implements the error interface
func (e *ValidationFailedError) Error() string {
	if e.Warnings > 0 {
		return fmt.Sprintf("dataset validation failed: %d violations, %d warnings", e.Violations, e.Warnings)
	}
	return fmt.Sprintf("dataset validation failed: %d violations", e.Violations)
}

// Is implements errors.Is support
func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationFailedError creates a new ValidationFailedError
func NewValidationFailedError(violations, warnings int) *ValidationFailedError {
	return &ValidationFailedError{Violations: violations, Warnings: warnings}
}

// MissingInputError represents a required input file that does not exist
type MissingInputError struct {
	Kind string // "locale list", "components", "dataset"
	Path string
	Err  error
}

// Error implements the error interface
func (e *MissingInputError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("missing %s input: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("missing input: %s", e.Path)
}

// Unwrap implements errors.Unwrap
func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// NewMissingInputError creates a new MissingInputError
func NewMissingInputError(kind, path string, err error) *MissingInputError {
	return &MissingInputError{Kind: kind, Path: path, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "xml", "csv", "json", "yaml"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "update", "delete", "load"
	Resource  string // "dataset", "site", "component", "config"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// PublishError represents a failure writing the published dataset
type PublishError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed for %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PublishError) Unwrap() error {
	return e.Err
}

// NewPublishError creates a new PublishError
func NewPublishError(path string, err error) *PublishError {
	return &PublishError{Path: path, Err: err}
}

// PartialPublishError represents a publish that wrote some destinations
// but not all of them. This violates the all-or-nothing publish contract
// and leaves the destinations inconsistent with each other.
type PartialPublishError struct {
	Written []string
	Failed  string
	Err     error
}

// Error implements the error interface
func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("partial publish: wrote %v but failed %s: %v", e.Written, e.Failed, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PartialPublishError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PartialPublishError) Is(target error) bool {
	return target == ErrPartialPublish
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMissingInput checks if an error indicates a missing input file
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// IsPartialPublish checks if an error indicates a partial publish
func IsPartialPublish(err error) bool {
	return errors.Is(err, ErrPartialPublish)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
