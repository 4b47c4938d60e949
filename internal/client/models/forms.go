package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Forms are validated locally before any request goes out; a failed rule
// produces a *ValidationError and the request is never issued. The JSON
// tags double as the request-body layout the API expects.

var validate = validator.New()

// ValidationError carries a user-displayable message for the first
// failed form rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// LoginForm is the body of POST /api/auth/login.
type LoginForm struct {
	NIP      string `json:"nip" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks that both credentials were entered.
func (f LoginForm) Validate() error {
	return firstMessage(validate.Struct(f), func(errs validator.ValidationErrors) string {
		return "Isi semua field yang diperlukan"
	})
}

// RegisterForm is the body of POST /api/auth/register. The confirmation
// field is checked locally and never sent.
type RegisterForm struct {
	NIP             string `json:"nip" validate:"required,numeric"`
	FullName        string `json:"fullName" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

// Validate applies the registration rules with the same precedence the
// SIAP web form uses: confirmation mismatch, password length, NIP
// format, then missing fields.
func (f RegisterForm) Validate() error {
	return firstMessage(validate.Struct(f), func(errs validator.ValidationErrors) string {
		tags := tagSet(errs)
		switch {
		case tags["eqfield"]:
			return "Kata sandi tidak cocok"
		case tags["min"]:
			return "Kata sandi minimal 6 karakter"
		case tags["numeric"]:
			return "NIP harus berupa angka"
		default:
			return "Isi semua field yang diperlukan"
		}
	})
}

// ArchiveForm is the body of POST /api/files and PUT /api/files/:id.
type ArchiveForm struct {
	FileName    string `json:"fileName" validate:"required"`
	UPTDName    string `json:"uptdName" validate:"required"`
	InputDate   string `json:"inputDate" validate:"required,datetime=2006-01-02"`
	FileAmount  int    `json:"fileAmount" validate:"required,gt=0"`
	BoxNumber   string `json:"boxNumber" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Validate checks the mandatory archive fields and the date layout.
func (f ArchiveForm) Validate() error {
	return firstMessage(validate.Struct(f), func(errs validator.ValidationErrors) string {
		tags := tagSet(errs)
		if tags["required"] || tags["gt"] {
			return "Please fill in all required fields"
		}
		return "Tanggal harus berformat YYYY-MM-DD"
	})
}

// UserForm is the body of PUT /api/users/:id. An empty password is
// omitted from the payload and the server keeps the existing one.
type UserForm struct {
	FullName string `json:"fullName" validate:"required"`
	NIP      string `json:"nip" validate:"required,numeric"`
	Title    string `json:"title" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=user admin"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// Validate applies the user-edit rules in the order of the SIAP admin
// form: missing fields, NIP format, then optional-password length.
func (f UserForm) Validate() error {
	return firstMessage(validate.Struct(f), func(errs validator.ValidationErrors) string {
		tags := tagSet(errs)
		switch {
		case tags["required"] || tags["oneof"]:
			return "Please fill in all required fields"
		case tags["numeric"]:
			return "NIP must contain only numbers"
		default:
			return "Password must be at least 6 characters"
		}
	})
}

// firstMessage converts a validator result into a *ValidationError using
// the form-specific message picker. Non-validation errors pass through
// unchanged.
func firstMessage(err error, pick func(validator.ValidationErrors) string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	return &ValidationError{Message: pick(errs)}
}

func tagSet(errs validator.ValidationErrors) map[string]bool {
	tags := make(map[string]bool, len(errs))
	for _, fe := range errs {
		tags[fe.Tag()] = true
	}
	return tags
}
