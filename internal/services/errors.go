package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks a request rejected before it reached the store.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the offending fields of a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidField(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

var validate = validator.New()

// validateStruct runs the struct tags of req and converts failures to a ValidationError.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonName(fe.Field())] = "is " + fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// requireString checks that doc[field] is a non-empty string.
func requireString(doc map[string]any, field string) (string, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return "", invalidField(field, "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidField(field, "must be a string")
	}
	if err := validate.Var(s, "required"); err != nil {
		return "", invalidField(field, "is required")
	}
	return s, nil
}

func jsonName(field string) string {
	if field == "ID" {
		return "id"
	}
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
