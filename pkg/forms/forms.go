// Package forms binds and validates submitted HTML forms. Struct rules run on
// gin's validator engine; checks that need the store go through small lookup
// interfaces so forms stay testable without a database.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taxifleet/storage"
)

// NonField collects errors that belong to the form as a whole.
const NonField = "__all__"

const (
	MsgRequired       = "This field is required."
	MsgLicenseNumber  = "License number must consist of 8 characters: first 3 uppercase letters, last 5 digits."
	MsgUsername       = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgEmail          = "Enter a valid email address."
	MsgPasswordMatch  = "The two password fields didn’t match."
	MsgUsernameTaken  = "A user with that username already exists."
	MsgLicenseTaken   = "Driver with this License number already exists."
	MsgInvalidChoice  = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidLogin   = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	MsgInactiveLogin  = "This account is inactive."
	MsgMaxLengthShort = "Ensure this value has at most %s characters (it has %d)."
)

var (
	licenseNumberRe = regexp.MustCompile(`^[A-Z]{3}[0-9]{5}$`)
	usernameRe      = regexp.MustCompile(`^[\w.@+-]+$`)
)

// ValidLicenseNumber reports whether s is three uppercase ASCII letters
// followed by five digits.
func ValidLicenseNumber(s string) bool {
	return licenseNumberRe.MatchString(s)
}

var setupOnce sync.Once

// Setup registers the custom tags on gin's validator and reports fields by
// their form name. It is safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("forms: gin validator engine is not go-playground/validator")
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("license_number", func(fl validator.FieldLevel) bool {
			return ValidLicenseNumber(fl.Field().String())
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	})
}

// FieldErrors maps a form field to its messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// Get is used by templates to list the messages of one field.
func (e FieldErrors) Get(field string) []string {
	return e[field]
}

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Bind decodes submitted values into the form struct pointed to by ptr using
// its form tags. Validation is separate; see validate.
func Bind(values url.Values, ptr any) error {
	return binding.MapFormWithTag(ptr, values, "form")
}

// validate runs the struct rules and appends their messages to errs.
func validate(form any, errs FieldErrors) {
	Setup()

	err := binding.Validator.ValidateStruct(form)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonField, err.Error())
		return
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf(MsgMaxLengthShort, fe.Param(), len([]rune(fe.Value().(string))))
	case "email":
		return MsgEmail
	case "license_number":
		return MsgLicenseNumber
	case "username":
		return MsgUsername
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

// AddConstraintError maps a unique or foreign key violation reported by the
// store to the field it belongs to. It reports false when no field is
// responsible.
func AddConstraintError(err error, errs FieldErrors) bool {
	switch storage.Constraint(err) {
	case storage.ConstraintDriverUsername:
		errs.Add("username", MsgUsernameTaken)
	case storage.ConstraintDriverLicense:
		errs.Add("license_number", MsgLicenseTaken)
	case storage.ConstraintCarManufacturer:
		errs.Add("manufacturer", MsgInvalidChoice)
	case storage.ConstraintCarDriversDriver:
		errs.Add("drivers", MsgInvalidChoice)
	default:
		return false
	}
	return true
}
