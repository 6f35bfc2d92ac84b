package validation

import "fmt"

// ValidationResult collects field-level failures for one value object.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (r *ValidationResult) add(field, message, code string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Code: code})
}

// Error renders all failures as a single message for fatal planning errors.
func (r *ValidationResult) Error() string {
	if r.Valid {
		return ""
	}
	msg := "validation failed:"
	for _, e := range r.Errors {
		msg += fmt.Sprintf(" %s (%s);", e.Field, e.Message)
	}
	return msg
}

// Checker accumulates checks against named fields.
type Checker struct {
	result ValidationResult
}

func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) RequireNonEmpty(field, value string) *Checker {
	if value == "" {
		c.result.add(field, "must not be empty", "REQUIRED_FIELD_MISSING")
	}
	return c
}

func (c *Checker) RequirePositive(field string, value int) *Checker {
	if value <= 0 {
		c.result.add(field, fmt.Sprintf("must be positive, got %d", value), "VALUE_OUT_OF_RANGE")
	}
	return c
}

func (c *Checker) RequirePercentage(field string, value int) *Checker {
	if value < 0 || value > 100 {
		c.result.add(field, fmt.Sprintf("must be within [0,100], got %d", value), "VALUE_OUT_OF_RANGE")
	}
	return c
}

// Result finalizes the checks.
func (c *Checker) Result() *ValidationResult {
	c.result.Valid = len(c.result.Errors) == 0
	return &c.result
}
