package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TokenKey is the well-known storage key of the persisted bearer token.
const TokenKey = "token"

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidToken = errors.New("invalid token")
)

// Role is the account type chosen on the login form.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"

	DefaultRole = RoleAdmin
)

// Roles lists the accepted roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEmployee}
}

// ParseRole accepts only the two known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleEmployee:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Label is the human readable name shown in the role selector.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleEmployee:
		return "Employee"
	default:
		return string(r)
	}
}

// Service defines the authentication operations
type Service interface {
	Login(ctx context.Context, creds Credentials) (*User, string, error)
}

// TokenStore is the durable client-side storage of the bearer token.
// Token returns an empty string when no token is stored.
type TokenStore interface {
	Token() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// User represents authenticated user data
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// Credentials contains login request data
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=admin employee"`
}

// NewCredentials returns empty credentials with the default role selected.
func NewCredentials() Credentials {
	return Credentials{Role: DefaultRole}
}

var validate = validator.New()

// ValidationError maps lower-cased field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name])
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate checks the required-field semantics of the login form. Credential correctness
// is left to the server.
func (c Credentials) Validate() error {
	return ValidateStruct(c)
}

// ValidateStruct runs the struct's validate tags and reports failures as a *ValidationError.
func ValidateStruct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldName := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[fieldName] = fmt.Sprintf("The %s field is required.", fieldName)
		case "oneof":
			fields[fieldName] = fmt.Sprintf("The %s must be one of: %s.", fieldName, fe.Param())
		case "email":
			fields[fieldName] = fmt.Sprintf("The %s must be a valid email address.", fieldName)
		default:
			fields[fieldName] = fmt.Sprintf("The %s field is invalid.", fieldName)
		}
	}
	return &ValidationError{Fields: fields}
}
