package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"clientListWebsite/internal/models"
)

// Validator collects input validation errors
type Validator struct {
	errors []string
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]string, 0),
	}
}

// AddError adds a validation error
func (v *Validator) AddError(message string) {
	v.errors = append(v.errors, message)
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors
func (v *Validator) Errors() []string {
	return v.errors
}

// ErrorString returns all errors as a single string
func (v *Validator) ErrorString() string {
	return strings.Join(v.errors, "; ")
}

// Err returns the collected errors as a ValidationError, or nil
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return &ValidationError{Message: v.ErrorString()}
}

// ValidateRequired checks if a string is not empty
func (v *Validator) ValidateRequired(value, field string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(fmt.Sprintf("%s is required", field))
	}
	return v
}

// ValidateLength checks string length constraints
func (v *Validator) ValidateLength(value, field string, min, max int) *Validator {
	length := utf8.RuneCountInString(value)
	if length < min {
		v.AddError(fmt.Sprintf("%s must be at least %d characters long", field, min))
	}
	if max > 0 && length > max {
		v.AddError(fmt.Sprintf("%s must be no more than %d characters long", field, max))
	}
	return v
}

// ValidateCriterionID checks the shape of a sort criterion id. Unknown but
// well-formed ids are left to the store, which ignores them.
func (v *Validator) ValidateCriterionID(id, field string) *Validator {
	v.ValidateRequired(id, field)
	if id == "" {
		return v
	}
	v.ValidateLength(id, field, 1, models.MaxCriterionIDLength)
	if !models.CriterionIDPattern.MatchString(id) {
		v.AddError(fmt.Sprintf("%s can only contain letters, numbers, hyphens, and underscores", field))
	}
	return v
}

// ValidateSortField checks that field names a sortable client field
func (v *Validator) ValidateSortField(field *models.SortField, name string) *Validator {
	if field != nil && !field.IsValid() {
		v.AddError(fmt.Sprintf("%s must be one of %s", name, joinSortFields()))
	}
	return v
}

// ValidateSortDirection checks that direction is asc or desc
func (v *Validator) ValidateSortDirection(direction *models.SortDirection, name string) *Validator {
	if direction != nil && !direction.IsValid() {
		v.AddError(fmt.Sprintf("%s must be asc or desc", name))
	}
	return v
}

func joinSortFields() string {
	names := make([]string, len(models.SortFields))
	for i, f := range models.SortFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
