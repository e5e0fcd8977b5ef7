package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParse             ErrorType = "PARSE"
	ErrTypeTypeMismatch      ErrorType = "TYPE_MISMATCH"
	ErrTypeTypeComparison    ErrorType = "TYPE_COMPARISON"
	ErrTypeContractViolation ErrorType = "CONTRACT_VIOLATION"
	ErrTypeDomainValidation  ErrorType = "DOMAIN_VALIDATION"
	ErrTypeConfig            ErrorType = "CONFIG"
	ErrTypeExport            ErrorType = "EXPORT"
)

// Sentinels for errors.Is. Any AppError of the same type matches.
var (
	ErrParse             = &AppError{Type: ErrTypeParse}
	ErrTypeMismatch      = &AppError{Type: ErrTypeTypeMismatch}
	ErrTypeComparison    = &AppError{Type: ErrTypeTypeComparison}
	ErrContractViolation = &AppError{Type: ErrTypeContractViolation}
	ErrDomainValidation  = &AppError{Type: ErrTypeDomainValidation}
	ErrConfig            = &AppError{Type: ErrTypeConfig}
	ErrExport            = &AppError{Type: ErrTypeExport}
)

// AppError represents a typed error raised by the domain model or its adapters
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewParseError reports a raw value that matches nothing the target type accepts.
func NewParseError(target string, raw interface{}) *AppError {
	return NewAppError(ErrTypeParse, fmt.Sprintf("cannot parse %#v as %s", raw, target), nil).
		WithContext("target", target).
		WithContext("raw", raw)
}

// NewTypeMismatchError reports two values of different concrete types where one type is required.
func NewTypeMismatchError(left, right interface{}) *AppError {
	return NewAppError(ErrTypeTypeMismatch,
		fmt.Sprintf("type mismatch: %T and %T", left, right), nil).
		WithContext("left", fmt.Sprintf("%T", left)).
		WithContext("right", fmt.Sprintf("%T", right))
}

// NewTypeComparisonError reports an ordering request against an incompatible type.
func NewTypeComparisonError(target string, other interface{}) *AppError {
	return NewAppError(ErrTypeTypeComparison,
		fmt.Sprintf("cannot compare %s with %T", target, other), nil).
		WithContext("target", target)
}

// NewContractViolationError reports a defect in a value-object definition.
func NewContractViolationError(message string) *AppError {
	return NewAppError(ErrTypeContractViolation, message, nil)
}

// NewDomainValidationError reports a violated range or cross-field invariant.
func NewDomainValidationError(field, message string, value interface{}) *AppError {
	msg := message
	if field != "" {
		msg = fmt.Sprintf("%s: %s", field, message)
	}
	return NewAppError(ErrTypeDomainValidation, msg, nil).
		WithContext("field", field).
		WithContext("value", value)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewExportError creates an export error
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// IsParse reports whether err is a ParseError
func IsParse(err error) bool { return errors.Is(err, ErrParse) }

// IsTypeMismatch reports whether err is a TypeMismatchError
func IsTypeMismatch(err error) bool { return errors.Is(err, ErrTypeMismatch) }

// IsTypeComparison reports whether err is a TypeComparisonError
func IsTypeComparison(err error) bool { return errors.Is(err, ErrTypeComparison) }

// IsContractViolation reports whether err is a ContractViolationError
func IsContractViolation(err error) bool { return errors.Is(err, ErrContractViolation) }

// IsDomainValidation reports whether err is a DomainValidationError
func IsDomainValidation(err error) bool { return errors.Is(err, ErrDomainValidation) }
