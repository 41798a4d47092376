// Package errors provides the induction scheduling core's error
// taxonomy: a small code enum plus a structured AppError carrying
// enough context for the façade to decide fallback vs propagation.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an AppError for programmatic handling.
type Code string

const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Scheduling-core specific.
	CodeInsufficientFleet       Code = "INSUFFICIENT_FLEET"
	CodeDataParseError          Code = "DATA_PARSE_ERROR"
	CodeSolverError             Code = "SOLVER_ERROR"
	CodeConstraintContradiction Code = "CONSTRAINT_CONTRADICTION"
	CodeCancelled               Code = "CANCELLED"
)

// AppError is the structured error type every core-level failure
// surfaces as.
type AppError struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches a human-readable detail string.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause attaches the underlying error that triggered this one.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithField attaches a structured field for logging.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates an AppError with no cause.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError carrying err as its cause.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is an AppError of the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the Code from err, or CodeUnknown if err is not an
// AppError.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// InsufficientFleet reports that the eligibility gate could not admit
// enough trainsets to fill the roster even after full relaxation.
func InsufficientFleet(have, need int) *AppError {
	return New(CodeInsufficientFleet, fmt.Sprintf("need %d, have %d", need, have)).
		WithField("have", have).WithField("need", need)
}

// DataParseError reports that a single record's date or enum field
// failed to parse; callers recover by scoring that record conservatively,
// never by aborting the whole invocation.
func DataParseError(trainsetID, field string, cause error) *AppError {
	return Wrap(cause, CodeDataParseError, fmt.Sprintf("failed to parse %s for trainset %s", field, trainsetID))
}

// SolverError wraps a solver failure that triggers the fallback path.
func SolverError(solverName string, cause error) *AppError {
	return Wrap(cause, CodeSolverError, fmt.Sprintf("solver %q failed", solverName))
}

// ConstraintContradiction reports a soft-constraint conjunction that is
// infeasible even after every sufficiency guard passed individually.
func ConstraintContradiction(details string) *AppError {
	return New(CodeConstraintContradiction, "soft constraints jointly infeasible").WithDetails(details)
}

// Cancelled reports that the caller cancelled the invocation.
func Cancelled() *AppError {
	return New(CodeCancelled, "cancelled")
}

// InvalidInput reports a precondition violation the core never
// recovers from (e.g. a negative roster size); callers should treat
// this as a programmer error, not a runtime condition to branch on.
func InvalidInput(field, reason string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("field %q invalid: %s", field, reason))
}
