// Package validation runs the struct-tag and cross-field rules of the
// composite value objects and reports violations as domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "bioarch/pkg/errors"
)

// Tags used by struct-level rules registered by the domain packages.
const (
	TagHalfStep    = "halfstep"
	TagAbsentTooth = "absent_tooth"
	TagExclusive   = "exclusive"
	TagFlaggedMin  = "flagged_min"
)

var (
	mu       sync.Mutex
	instance *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = newValidator()
	}
	return instance
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation(TagHalfStep, validateHalfStep); err != nil {
		panic(fmt.Sprintf("register %s: %v", TagHalfStep, err))
	}

	return v
}

// RegisterStructRule attaches a cross-field rule to the given types. It must
// be called from package initialisation, before any validation runs.
func RegisterStructRule(fn validator.StructLevelFunc, types ...interface{}) {
	Validator().RegisterStructValidation(fn, types...)
}

// validateHalfStep accepts numbers on a 0.5 grid.
func validateHalfStep(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		doubled := field.Float() * 2
		return doubled == math.Trunc(doubled)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// Struct validates v and converts the first violation into a
// DomainValidationError. The full list is attached as "violations".
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperrors.NewContractViolationError(fmt.Sprintf("cannot validate %T: %v", v, err))
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperrors.NewAppError(apperrors.ErrTypeDomainValidation, "validation failed", err)
	}

	messages := make([]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		messages[i] = FormatFieldError(fe)
	}

	first := fieldErrors[0]
	return apperrors.NewDomainValidationError(first.Field(), messages[0], first.Value()).
		WithContext("violations", messages)
}

// FormatFieldError renders a single violation
func FormatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must have exactly %s entries", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case TagHalfStep:
		return fmt.Sprintf("%s must be a multiple of 0.5", field)
	case TagAbsentTooth:
		return fmt.Sprintf("%s must be NA when the tooth is NA", field)
	case TagExclusive:
		return fmt.Sprintf("%s cannot be combined with %s", field, param)
	case TagFlaggedMin:
		return fmt.Sprintf("%s must be at least %s when flagged", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
