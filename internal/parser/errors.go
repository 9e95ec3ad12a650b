package parser

// errors.go defines the structured error envelope surfaced at the core's
// outer boundary.
//
// Two tiers of failure exist:
//   - Fatal pipeline errors (bad URL, transport failure, undecodable
//     payload, missing header sentinel, zero surviving records): exactly
//     one error is surfaced and it carries no details list.
//   - Accumulated validation errors: every per-field and per-row defect
//     found across metadata and all candidate records, surfaced together
//     as one VALIDATION_FAILED envelope whose Details preserves discovery
//     order.
//
// A StructuredError, once created, passes through to the boundary
// unmodified; nothing re-wraps it in a way that would lose Code or Details.

import (
	"fmt"
	"time"

	"github.com/reportline/sheetparser/internal/validate"
)

// ErrorCode is the machine-readable failure classification.
type ErrorCode string

const (
	CodeInvalidURL         ErrorCode = "INVALID_URL"
	CodeInvalidSheetsURL   ErrorCode = "INVALID_GOOGLE_SHEETS_URL"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeParseFailed        ErrorCode = "PARSE_FAILED"
	CodeMethodNotAllowed   ErrorCode = "METHOD_NOT_ALLOWED"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// categories maps each code to the human category name carried in the
// envelope's "error" field.
var categories = map[ErrorCode]string{
	CodeInvalidURL:       "Invalid URL",
	CodeInvalidSheetsURL: "Invalid Google Sheets URL",
	CodeValidationFailed: "Validation Error",
	CodeParseFailed:      "Parse Error",
	CodeMethodNotAllowed: "Method Not Allowed",
	CodeInternal:         "Internal Error",
}

// StructuredError is the single failure object returned across the core's
// outer boundary. The HTTP layer JSON-encodes it verbatim.
type StructuredError struct {
	Err       string                       `json:"error"`             // Category name
	Message   string                       `json:"message"`           // Summary
	Code      ErrorCode                    `json:"code"`              // Machine-readable classification
	Details   []validate.ValidationError   `json:"details,omitempty"` // Every defect, discovery order
	Timestamp string                       `json:"timestamp"`         // RFC 3339 UTC
}

func (e *StructuredError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%d details)", e.Code, e.Message, len(e.Details))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newError builds a fatal StructuredError without details.
func newError(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Err:       categories[code],
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// newValidationError builds a VALIDATION_FAILED envelope carrying every
// accumulated defect.
func newValidationError(message string, details []validate.ValidationError) *StructuredError {
	return &StructuredError{
		Err:       categories[CodeValidationFailed],
		Message:   message,
		Code:      CodeValidationFailed,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewMethodNotAllowed is the envelope the transport layer returns for
// unsupported HTTP methods. Assigned here so the code set stays in one place.
func NewMethodNotAllowed(method string) *StructuredError {
	return newError(CodeMethodNotAllowed, fmt.Sprintf("Method %s is not allowed", method))
}

// NewInternalError wraps an unexpected failure into the boundary envelope.
func NewInternalError(err error) *StructuredError {
	return newError(CodeInternal, err.Error())
}
