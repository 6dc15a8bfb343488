// Package validator holds the single authoritative rule set for a
// consultation booking. The HTTP pipeline and the form client both call
// into this package, so the two validation sites cannot drift apart.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"consultly/pkg/logger"
	"consultly/pkg/model"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[0-9 ()+-]{10,15}$`)
)

type BookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	// Error maps are keyed by the wire field names, not Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]*regexp.Regexp{
		"person_name": nameRegex,
		"email_shape": emailRegex,
		"phone_shape": phoneRegex,
	}
	for tag, re := range rules {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(strings.TrimSpace(fl.Field().String()))
		}); err != nil {
			log.Fatal("Failed to register validation", "tag", tag, "error", err)
		}
	}

	return &BookingValidator{
		validate: v,
		log:      log,
		now:      time.Now,
	}
}

// Validate applies the server's authoritative rules and returns a field ->
// message map; an empty map means the request is valid. The input is never
// mutated and the check is safe to repeat.
func (v *BookingValidator) Validate(req *model.BookingRequest) map[string]string {
	fieldErrors := map[string]string{}

	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				if _, seen := fieldErrors[fe.Field()]; !seen {
					fieldErrors[fe.Field()] = translate(fe)
				}
			}
		} else {
			fieldErrors["payload"] = "invalid payload structure"
		}
	}

	if _, present := fieldErrors["preferredDate"]; !present {
		if msg := v.checkPreferredDate(req.PreferredDate); msg != "" {
			fieldErrors["preferredDate"] = msg
		}
	}

	return fieldErrors
}

// ValidateForm runs the client pre-check: everything Validate enforces plus
// membership of the closed option sets the form renders. The server stays
// presence-only on those fields; the form is stricter for UX.
func (v *BookingValidator) ValidateForm(req *model.BookingRequest) map[string]string {
	fieldErrors := v.Validate(req)

	memberships := []struct {
		field   string
		value   string
		options []string
	}{
		{"state", req.State, model.States},
		{"service", req.Service, model.Services},
		{"englishLevel", req.EnglishLevel, model.EnglishLevels},
		{"age", req.Age, model.AgeGroups},
		{"education", req.Education, model.EducationLevels},
		{"experience", req.Experience, model.ExperienceLevels},
		{"visaType", req.VisaType, model.VisaTypes},
	}
	for _, m := range memberships {
		if _, seen := fieldErrors[m.field]; seen {
			continue
		}
		if m.value != "" && !model.Contains(m.options, m.value) {
			fieldErrors[m.field] = fmt.Sprintf("%s must be one of the listed options", m.field)
		}
	}

	return fieldErrors
}

func (v *BookingValidator) checkPreferredDate(value string) string {
	if strings.TrimSpace(value) == "" {
		return "" // presence already reported by the required rule
	}
	_, ok, err := model.ParsePreferredDate(strings.TrimSpace(value), v.now())
	if err != nil {
		return "preferredDate must be a valid date in YYYY-MM-DD format"
	}
	if !ok {
		return "preferredDate cannot be in the past"
	}
	return ""
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "person_name":
		return "name must be 2-50 characters, letters and spaces only"
	case "email_shape":
		return "email must be a valid email address"
	case "phone_shape":
		return "phone must be 10-15 characters: digits, spaces, or ()+-"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
