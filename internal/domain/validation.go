package domain

import "strings"

// FieldError is a single field-level validation rule violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the complete set of field-level violations from
// one validation pass, returned together rather than short-circuited
// at the first failure so callers can render all of them at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields returns the violations keyed by field name.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, fe := range v {
		fields[fe.Field] = fe.Message
	}
	return fields
}
