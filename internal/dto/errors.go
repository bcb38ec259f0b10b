package dto

// BaseError is the common error body.
// Code: machine-readable code (snake_case)
// Fields: per-field messages for validation errors
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the failure half of the response envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   BaseError `json:"error"`
}

func newError(code, msg string, fields []FieldError) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: msg,
		Error:   BaseError{Code: code, Message: msg, Fields: fields},
	}
}

func NewValidationError(msg string, fields []FieldError) ErrorResponse {
	return newError("validation_error", msg, fields)
}

func NewNotFoundError(msg string) ErrorResponse {
	return newError("not_found", msg, nil)
}

func NewConflictError(msg string) ErrorResponse {
	return newError("conflict", msg, nil)
}

func NewInternalError(details string) ErrorResponse {
	e := newError("internal_error", "internal server error", nil)
	e.Error.Details = details
	return e
}
