// Package validators checks the shape of user supplied account and note fields.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-notebook/internal/models"
)

// Rule identifies the violated validation rule.
type Rule string

const (
	RuleRequired         Rule = "required"
	RuleUsernameTooShort Rule = "username_too_short"
	RuleUsernameTooLong  Rule = "username_too_long"
	RuleEmailTooLong     Rule = "email_too_long"
	RuleInvalidEmail     Rule = "invalid_email"
	RuleWeakPassword     Rule = "weak_password"
	RulePasswordMismatch Rule = "password_mismatch"
	RuleTitleTooLong     Rule = "title_too_long"
)

const (
	// MinUsernameLength is the minimum username length in characters.
	MinUsernameLength = 3
	// MaxUsernameLength matches the users.username column.
	MaxUsernameLength = 50
	// MaxEmailLength matches the users.email column.
	MaxEmailLength = 255
	// MaxNoteTitleLength is the maximum note title length in characters.
	MaxNoteTitleLength = 60
	// DefaultPasswordSymbols is the punctuation set counted by the password policy.
	DefaultPasswordSymbols = "!@#$%^&*()-_=+{};:,<.>"
)

// RuleError is returned for the first violated rule.
type RuleError struct {
	Rule    Rule
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// IsRuleError reports whether err is a validation failure.
func IsRuleError(err error) bool {
	var ruleErr *RuleError
	return errors.As(err, &ruleErr)
}

// PasswordPolicy describes what a password must contain.
type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	MinSymbols       int
	Symbols          string
}

// DefaultPasswordPolicy returns the policy used when nothing else is configured.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        6,
		RequireUppercase: true,
		MinSymbols:       2,
		Symbols:          DefaultPasswordSymbols,
	}
}

// Allows reports whether password satisfies the policy.
func (p PasswordPolicy) Allows(password string) bool {
	if utf8.RuneCountInString(password) < p.MinLength {
		return false
	}
	var upper, symbols int
	for _, r := range password {
		if unicode.IsUpper(r) {
			upper++
		}
		if strings.ContainsRune(p.Symbols, r) {
			symbols++
		}
	}
	if p.RequireUppercase && upper == 0 {
		return false
	}
	return symbols >= p.MinSymbols
}

// Describe returns the human readable policy.
func (p PasswordPolicy) Describe() string {
	return fmt.Sprintf(
		`Password must be at least %d characters, include at least one uppercase letter, and two special symbols (e.g., "!@#")`,
		p.MinLength,
	)
}

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validator is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	policy   PasswordPolicy
}

// New creates a Validator enforcing the given password policy.
func New(policy PasswordPolicy) *Validator {
	v := validator.New()
	// Registration only fails on empty tag names.
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return policy.Allows(fl.Field().String())
	})
	return &Validator{validate: v, policy: policy}
}

// Policy returns the password policy in force.
func (v *Validator) Policy() PasswordPolicy {
	return v.policy
}

type signupInput struct {
	Username        string `validate:"required,min=3,max=50"`
	Email           string `validate:"required,max=255,email_shape"`
	Password        string `validate:"required,password_policy"`
	ConfirmPassword string `validate:"omitempty,eqfield=Password"`
}

// ValidateSignup checks a registration request and returns the first violated rule.
// The email is expected to be normalized already.
func (v *Validator) ValidateSignup(req models.SignupRequest) error {
	err := v.validate.Struct(signupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &RuleError{Rule: RuleRequired, Message: "Username, email, and password are required"}
		}
	}
	return v.ruleFor(fieldErrs[0].Field(), fieldErrs[0].Tag())
}

// ValidateUsername checks a single username.
func (v *Validator) ValidateUsername(username string) error {
	if err := v.validate.Var(username, "required,min=3,max=50"); err != nil {
		return v.ruleFor("Username", failedTag(err))
	}
	return nil
}

// ValidateEmail checks a single, already normalized, email.
func (v *Validator) ValidateEmail(email string) error {
	if err := v.validate.Var(email, "required,max=255,email_shape"); err != nil {
		return v.ruleFor("Email", failedTag(err))
	}
	return nil
}

// ValidatePassword checks a single password against the policy.
func (v *Validator) ValidatePassword(password string) error {
	if err := v.validate.Var(password, "required,password_policy"); err != nil {
		return v.ruleFor("Password", failedTag(err))
	}
	return nil
}

// ValidateNoteTitle checks the title length. Empty titles are allowed.
func (v *Validator) ValidateNoteTitle(title string) error {
	if err := v.validate.Var(title, "max=60"); err != nil {
		return &RuleError{
			Rule:    RuleTitleTooLong,
			Message: fmt.Sprintf("Title cannot be more than %d characters", MaxNoteTitleLength),
		}
	}
	return nil
}

func failedTag(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Tag()
	}
	return ""
}

func (v *Validator) ruleFor(field, tag string) *RuleError {
	switch {
	case field == "Username" && tag == "max":
		return &RuleError{
			Rule:    RuleUsernameTooLong,
			Message: fmt.Sprintf("Username cannot be more than %d characters", MaxUsernameLength),
		}
	case field == "Email" && tag == "max":
		return &RuleError{
			Rule:    RuleEmailTooLong,
			Message: fmt.Sprintf("Email cannot be more than %d characters", MaxEmailLength),
		}
	case field == "Username":
		return &RuleError{
			Rule:    RuleUsernameTooShort,
			Message: fmt.Sprintf("Username must be at least %d characters", MinUsernameLength),
		}
	case field == "Email":
		return &RuleError{Rule: RuleInvalidEmail, Message: "Please provide a valid email address"}
	case field == "Password":
		return &RuleError{Rule: RuleWeakPassword, Message: v.policy.Describe()}
	default:
		return &RuleError{Rule: RulePasswordMismatch, Message: "Passwords do not match"}
	}
}
