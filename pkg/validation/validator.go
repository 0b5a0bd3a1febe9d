package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Input limits
	MaxValues         = 64
	MinValue          = -9999
	MaxValue          = 9999
	MaxItemLength     = 32
	MaxVertexKey      = 8
	MaxQuestionLength = 500

	vertexPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names so messages match the payload the user sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister("kind", func(fl validator.FieldLevel) bool {
		return isKind(fl.Field().String())
	})
	mustRegister("order", func(fl validator.FieldLevel) bool {
		o := model.Order(fl.Field().String())
		return o == model.MaxHeap || o == model.MinHeap
	})
	mustRegister("vertexkey", func(fl validator.FieldLevel) bool {
		return ValidateVertexKey(fl.Field().String()) == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func isKind(s string) bool {
	for _, k := range model.Kinds() {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Struct validates v using its struct tags. Failures are returned as
// invalid-input errors carrying a user-facing notice.
func Struct(v any) error {
	if v == nil {
		return invalid("request cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return invalid("%s", formatValidationError(err))
	}
	return nil
}

// ValidateVertexKey checks a graph vertex key: 1..MaxVertexKey letters,
// digits or underscores.
func ValidateVertexKey(key string) error {
	if key == "" {
		return errors.New("vertex key cannot be empty")
	}
	if len(key) > MaxVertexKey {
		return fmt.Errorf("vertex key %q exceeds maximum length of %d characters", key, MaxVertexKey)
	}
	if !vertexPattern.MatchString(key) {
		return fmt.Errorf("vertex key %q is invalid (letters, digits and underscore only)", key)
	}
	return nil
}

// ValidateValues checks an initial value list.
func ValidateValues(values []int) error {
	if len(values) > MaxValues {
		return invalid("values: at most %d values allowed, got %d", MaxValues, len(values))
	}
	for i, v := range values {
		if v < MinValue || v > MaxValue {
			return invalid("values: value %d at index %d is outside [%d, %d]", v, i, MinValue, MaxValue)
		}
	}
	return nil
}

// ValidateSpeed checks the speed slider position.
func ValidateSpeed(speed int) error {
	if speed < 1 || speed > 100 {
		return invalid("speed: must be between 1 and 100, got %d", speed)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return model.NewError("validate").Cause(model.ErrInvalidInput).Notice(format, args...).Err()
}

// formatValidationError converts validator errors to a user-friendly message
func formatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	// Report the first failure only.
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Sprintf("%s: field is required", field)
		case "min":
			return fmt.Sprintf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Sprintf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Sprintf("%s: must be one of [%s]", field, param)
		case "kind":
			return fmt.Sprintf("%s: unknown structure %q", field, e.Value())
		case "order":
			return fmt.Sprintf("%s: heap order must be max or min", field)
		case "vertexkey":
			return fmt.Sprintf("%s: invalid vertex key %q", field, e.Value())
		default:
			return fmt.Sprintf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err.Error()
}
