// Package forms holds submit-time validation for the task and sprint editors.
// A form never calls the backend itself: on success it yields the entity for
// the parent to send (id present means update, absent means create).
package forms

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RuleError reports which validation rule failed. The first failing rule wins;
// later rules are not evaluated.
type RuleError struct {
	Rule    string
	Field   string
	Message string
}

func (e *RuleError) Error() string { return e.Message }

func ruleErr(rule, field, format string, args ...any) *RuleError {
	return &RuleError{Rule: rule, Field: field, Message: fmt.Sprintf(format, args...)}
}

// requiredFields runs the struct's `validate` tags and converts the first
// failure into a RuleError.
func requiredFields(v any) *RuleError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		return ruleErr("required", fe.Field(), "%s is required", fe.Field())
	}
	return ruleErr("required", "", "invalid input: %v", err)
}
