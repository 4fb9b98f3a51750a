package payload

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/marcelsud/content-webhook/content"
)

// FieldError describes one violated constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

// ValidationError carries every violation found in a request body
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + " " + fe.Message
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(errs []FieldError) {
	e.Errors = append(e.Errors, errs...)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := content.ParseCategory(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("registering category validation: %v", err))
	}

	return v
}

// validateStruct runs the struct tags and returns the violations with paths rooted at prefix
func validateStruct(s interface{}, prefix string) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: joinPath(prefix, ""), Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   joinPath(prefix, trimRoot(fe.Namespace())),
			Message: message(fe),
		})
	}
	return out
}

// trimRoot drops the Go struct name validator puts in front of every namespace
func trimRoot(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	collection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if collection {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if collection {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "url", "http_url":
		return "must be a valid URL"
	case "category":
		return "must be one of: " + strings.Join(content.CategoryNames(), ", ")
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
