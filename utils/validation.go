package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateIdentifier checks an API identifier such as an order id. Identifiers
// end up in URL paths and transfer memos, so only letters, digits, '-' and
// '_' are accepted.
func ValidateIdentifier(id string) (bool, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, "is required"
	}
	if len(id) > MaxIdentifierLength {
		return false, fmt.Sprintf("must not exceed %d characters", MaxIdentifierLength)
	}
	if !identifierRegex.MatchString(id) {
		return false, "may only contain letters, digits, '-' and '_'"
	}
	return true, ""
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}
