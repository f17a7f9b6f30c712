// Package errors provides standardized error handling for mlibctl.
// It defines the error kinds the dialogs distinguish between (backend
// rejections, transport failures, busy controls) and helpers for creating,
// wrapping and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// GatewayFailure means the backend answered with success=false
	GatewayFailure
	// TransportFailure means the request never produced a usable answer
	TransportFailure
	// InvalidConfig marks configuration problems
	InvalidConfig
	ConfigNotFound
	// InvalidInput marks bad user or caller input
	InvalidInput
	// Busy means a request from the same control is still in flight
	Busy
	// NotFound marks lookups of records that do not exist
	NotFound
)

// String returns a short name for the kind
func (k ErrorKind) String() string {
	switch k {
	case GatewayFailure:
		return "gateway failure"
	case TransportFailure:
		return "transport failure"
	case InvalidConfig:
		return "invalid config"
	case ConfigNotFound:
		return "config not found"
	case InvalidInput:
		return "invalid input"
	case Busy:
		return "busy"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrBusy            = &ApplicationError{msg: "request already in progress", kind: Busy}
	ErrAlreadyExported = &ApplicationError{msg: "file already exported", kind: Busy}
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrNotFound        = &ApplicationError{msg: "not found", kind: NotFound}
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Is matches errors of the same kind so sentinels like ErrBusy work with
// errors.Is regardless of message.
func (e *ApplicationError) Is(target error) bool {
	t, ok := target.(*ApplicationError)
	if !ok {
		return false
	}
	return t.kind != Unknown && t.kind == e.kind
}

// GatewayError represents an error reported by or while talking to the backend
type GatewayError struct {
	ApplicationError
	op string
}

// NewGatewayError creates an application-level failure for op. msg is the
// backend's own error text and may be empty.
func NewGatewayError(op, msg string) *GatewayError {
	return &GatewayError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: GatewayFailure,
		},
		op: op,
	}
}

// NewTransportError creates a transport failure for op wrapping err.
func NewTransportError(op string, err error) *GatewayError {
	return &GatewayError{
		ApplicationError: ApplicationError{
			msg:  "request failed",
			err:  err,
			kind: TransportFailure,
		},
		op: op,
	}
}

// Error returns the gateway error message
func (e *GatewayError) Error() string {
	msg := e.msg
	if msg == "" {
		msg = "backend reported failure"
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.op, msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.op, msg)
}

// Op returns the backend operation associated with the error
func (e *GatewayError) Op() string {
	return e.op
}

// Message returns the backend-supplied message, if any
func (e *GatewayError) Message() string {
	if e.kind != GatewayFailure {
		return ""
	}
	return e.msg
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	field string
}

// NewInvalidInputError creates a new invalid input error for field
func NewInvalidInputError(field, msg string) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: InvalidInput,
		},
		field: field,
	}
}

// Error returns the invalid input error message
func (e *InvalidInputError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("%s: %s", e.field, e.msg)
	}
	return e.msg
}

// Field returns the offending field name
func (e *InvalidInputError) Field() string {
	return e.field
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NotFoundf creates a NotFound error with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: NotFound,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: KindOf(err),
	}
}

// kinded is satisfied by every error type in this package
type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsGatewayFailure checks if the backend rejected the request
func IsGatewayFailure(err error) bool {
	return KindOf(err) == GatewayFailure
}

// IsTransportFailure checks if the request failed before the backend answered
func IsTransportFailure(err error) bool {
	return KindOf(err) == TransportFailure
}

// IsBusy checks if the error reports an in-flight request
func IsBusy(err error) bool {
	return KindOf(err) == Busy
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsNotFound checks if the error is a not-found error
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}

// ConnectionMessage is shown to the user for every transport failure.
const ConnectionMessage = "Failed to connect to server"

// UserMessage turns err into the text a dialog shows inline. Backend
// rejections show the backend's message (or fallback when it sent none),
// transport failures show ConnectionMessage.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case TransportFailure:
		return ConnectionMessage
	case GatewayFailure:
		var gwErr *GatewayError
		if errors.As(err, &gwErr) && gwErr.Message() != "" {
			return gwErr.Message()
		}
		return fallback
	case Busy:
		return ErrBusy.Error()
	default:
		return fallback
	}
}
