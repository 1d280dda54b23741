package validation

import "fmt"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects field errors found while validating a request.
type Result struct {
	Errors []FieldError `json:"errors,omitempty"`
}

func NewResult() *Result {
	return &Result{}
}

func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *Result) Addf(field, format string, args ...any) {
	r.Add(field, fmt.Sprintf(format, args...))
}

func (r *Result) HasError() bool {
	return len(r.Errors) > 0
}
