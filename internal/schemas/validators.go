package schemas

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/library/internal/entities"
)

// DateLayout is the wire and storage format of every date field.
const DateLayout = "2006-01-02"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// RegisterValidators installs the custom tags used by the request schemas.
// Call it on gin's engine as well so binding and service checks agree.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		return err
	}
	if err := v.RegisterValidation("readingage", func(fl validator.FieldLevel) bool {
		r, ok := fl.Field().Interface().(entities.ReadingAge)
		return ok && r.Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		l, ok := fl.Field().Interface().(entities.Language)
		return ok && l.Valid()
	})
}

// Validate checks a request struct against its binding tags.
func Validate(s any) error {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		if err := RegisterValidators(validate); err != nil {
			panic(err)
		}
	})
	if err := validate.Struct(s); err != nil {
		return Describe(err)
	}
	return nil
}

// Describe turns validator output into one readable line; other errors pass
// through unchanged.
func Describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "isodate":
		return field + " must be a date in YYYY-MM-DD format"
	case "readingage", "language":
		return field + " has an unknown value"
	}
	return fmt.Sprintf("%s failed the %q check", field, fe.Tag())
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}
