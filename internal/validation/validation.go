package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

var (
	phonePattern   = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
	zipCodePattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	lettersPattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("phone_br", matches(phonePattern))
		_ = v.RegisterValidation("zipcode_br", matches(zipCodePattern))
		_ = v.RegisterValidation("letters", matches(lettersPattern))
		instance = v
	})
	return instance
}

// Struct validates input before it is sent. Failures come back as a local
// validation *util.APIError keyed by json field path.
func Struct(input any) error {
	err := Validator().Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewLocalValidation(map[string]string{"_": err.Error()})
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		if _, seen := fields[key]; !seen {
			fields[key] = message(fe)
		}
	}
	return apperrors.NewLocalValidation(fields)
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// fieldPath drops the root struct name: "ShelterInput.address.city" -> "address.city".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return "must have at least " + fe.Param() + " characters"
		}
		if fe.Kind() == reflect.Slice {
			return "must have at least " + fe.Param() + " items"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must have at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "len":
		return "must have exactly " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "phone_br":
		return "must match (99) 99999-9999"
	case "zipcode_br":
		return "must match 99999-999"
	case "letters":
		return "must contain only letters and spaces"
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	case "nefield":
		return "must differ from " + fe.Param()
	default:
		return "is invalid"
	}
}
