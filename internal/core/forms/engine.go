package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\- ]{6,18}[0-9]$`)

// Engine evaluates rule tags. It wraps a validator instance with the
// account-specific tags registered.
type Engine struct {
	v *validator.Validate
}

// NewEngine builds an engine with the custom tags:
//
//	account_password  8-16 chars, letter, digit and symbol, no whitespace
//	phone             digits with optional leading + and dashes or spaces
func NewEngine() *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("account_password", func(fl validator.FieldLevel) bool {
		return domain.IsAccountPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	return &Engine{v: v}
}

// Check reports whether value satisfies the rule's tag.
func (e *Engine) Check(value string, rule Rule) bool {
	return e.v.Var(value, rule.Tag) == nil
}

// Struct validates s by its struct tags. Field failures come back as
// *apperrors.ValidationErrors keyed by json name.
func (e *Engine) Struct(s any) error {
	err := e.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verrs := apperrors.NewValidationErrors()
	for _, fe := range fieldErrs {
		verrs.Add(fieldPath(fe), describe(fe))
	}
	return verrs
}

// fieldPath drops the struct name from the namespace: "RegisterRequest.categoryList[0]" → "categoryList[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "Please enter a valid date"
	case "account_password":
		return PasswordPatternMessage
	case "phone":
		return "Please enter a valid phone number"
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}
