package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/team-directory/internal/domain"
)

// Exact user-facing strings surfaced on the member form.
const (
	MsgRequired      = "This field is required."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgInvalidPhone  = "Phone number must be formatted as ###-###-####."
	MsgInvalidChoice = "Select a valid choice."
	MsgEmailTaken    = "User with this Email address already exists."
	MsgPhoneTaken    = "User with this Phone already exists."
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// MemberInput is the create/edit form contract. Names may be blank; email
// and phone are mandatory; role defaults when omitted.
type MemberInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`
	Role      string `json:"role" validate:"omitempty,oneof=Admin Regular"`
}

// RoleOrDefault returns the supplied role, or Regular when absent.
func (in MemberInput) RoleOrDefault() domain.Role {
	if in.Role == "" {
		return domain.RoleRegular
	}
	return domain.Role(in.Role)
}

// FieldErrors maps field names to the user-facing messages reported for them.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	return strings.Join(parts, "; ")
}

// Details converts the field errors into error response details.
func (fe FieldErrors) Details() map[string]any {
	details := make(map[string]any, len(fe))
	for field, msgs := range fe {
		details[field] = msgs
	}
	return details
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// MemberInputErrors runs the form validation rules and collects every failing
// field. A nil result means the input is valid.
func MemberInputErrors(in MemberInput) FieldErrors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"non_field_errors": {err.Error()}}
	}
	fieldErrs := FieldErrors{}
	for _, fieldErr := range errs {
		fieldErrs[fieldErr.Field()] = append(fieldErrs[fieldErr.Field()], fieldMessage(fieldErr))
	}
	return fieldErrs
}

// ValidateEmail checks a single email address against the format rule.
func ValidateEmail(s string) error {
	if s == "" {
		return FieldErrors{"email": {MsgRequired}}
	}
	if err := validate.Var(s, "email"); err != nil {
		return FieldErrors{"email": {MsgInvalidEmail}}
	}
	return nil
}

// ValidatePhone checks a single phone number against the ###-###-#### rule.
func ValidatePhone(s string) error {
	if s == "" {
		return FieldErrors{"phone": {MsgRequired}}
	}
	if !phonePattern.MatchString(s) {
		return FieldErrors{"phone": {MsgInvalidPhone}}
	}
	return nil
}

// NormalizeEmail lowercases the domain part of the address so lookups and
// uniqueness behave case-insensitively regardless of how mail hosts were typed.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "phone":
		return MsgInvalidPhone
	case "oneof":
		return MsgInvalidChoice
	}
	return "Enter a valid value."
}
