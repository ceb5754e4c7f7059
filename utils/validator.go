package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"itdocsapi/models"
	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/highlight"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// report json names so callers can map errors back to request fields
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister("choice", func(fl validator.FieldLevel) bool {
		return models.IsChoice(fl.Param(), fl.Field().String())
	})
	mustRegister("lexer", func(fl validator.FieldLevel) bool {
		return highlight.IsLanguage(fl.Field().String())
	})
	mustRegister("hlstyle", func(fl validator.FieldLevel) bool {
		return highlight.IsStyle(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("cannot register validation %q: %v", tag, err))
	}
}

// ValidateStruct validates obj against its validate tags. The first failing
// field is reported as an *apperr.ValidationError.
func ValidateStruct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &apperr.ValidationError{Field: fe.Field(), Message: describe(fe)}
	}
	return &apperr.ValidationError{Message: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "ip":
		return fmt.Sprintf("%q is not a valid IP address", fe.Value())
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "choice":
		return fmt.Sprintf("%q is not a valid choice", fe.Value())
	case "lexer":
		return fmt.Sprintf("%q is not a known language", fe.Value())
	case "hlstyle":
		return fmt.Sprintf("%q is not a known style", fe.Value())
	case "gte", "lte", "ltefield":
		return fmt.Sprintf("value %v is out of range (%s %s)", fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
