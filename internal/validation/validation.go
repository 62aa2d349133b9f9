// Package validation checks the syntax of usernames and passwords before an
// account is created.
//
// Rules are evaluated in a fixed order and only the first failing rule is
// reported:
//
//	username: at least 3 characters, then only ASCII letters, digits and '_'
//	password: at least 6 characters, then an ASCII letter, then a digit
//
// Lengths are counted in characters (runes), not bytes.
package validation

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Rule is a stable identifier for a failed check. The CLI uses it as the
// message id when translating the failure.
type Rule string

const (
	RuleUsernameLength Rule = "validation.username.min_length"
	RuleUsernameChars  Rule = "validation.username.chars"
	RulePasswordLength Rule = "validation.password.min_length"
	RulePasswordLetter Rule = "validation.password.letter"
	RulePasswordDigit  Rule = "validation.password.digit"
)

var reasons = map[Rule]string{
	RuleUsernameLength: "username must be at least 3 characters long",
	RuleUsernameChars:  "username may contain only letters, digits and underscore",
	RulePasswordLength: "password must be at least 6 characters long",
	RulePasswordLetter: "password must contain at least one letter",
	RulePasswordDigit:  "password must contain at least one digit",
}

// Error describes the first rule a value failed. It matches
// ErrInvalidUsername or ErrInvalidPassword with errors.Is.
type Error struct {
	Field  string
	Rule   Rule
	Reason string

	kind error
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Unwrap() error { return e.kind }

const (
	usernameTags = "min=3,usernamechars"
	passwordTags = "min=6,hasletter,hasdigit"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "usernamechars", func(fl validator.FieldLevel) bool {
		return onlyUsernameChars(fl.Field().String())
	})
	mustRegister(v, "hasletter", func(fl validator.FieldLevel) bool {
		return containsFunc(fl.Field().String(), isASCIILetter)
	})
	mustRegister(v, "hasdigit", func(fl validator.FieldLevel) bool {
		return containsFunc(fl.Field().String(), unicode.IsDigit)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Username returns nil when name is an acceptable username.
func Username(name string) error {
	err := validate.Var(name, usernameTags)
	if err == nil {
		return nil
	}

	rule := RuleUsernameChars
	if failedTag(err) == "min" {
		rule = RuleUsernameLength
	}
	return newError("username", rule, ErrInvalidUsername)
}

// Password returns nil when pw satisfies the minimum password policy.
func Password(pw string) error {
	err := validate.Var(pw, passwordTags)
	if err == nil {
		return nil
	}

	var rule Rule
	switch failedTag(err) {
	case "min":
		rule = RulePasswordLength
	case "hasletter":
		rule = RulePasswordLetter
	default:
		rule = RulePasswordDigit
	}
	return newError("password", rule, ErrInvalidPassword)
}

// ValidateUsername reports whether name is valid together with a
// human-readable reason.
func ValidateUsername(name string) (bool, string) {
	return result(Username(name), "username is valid")
}

// ValidatePassword reports whether pw is valid together with a
// human-readable reason.
func ValidatePassword(pw string) (bool, string) {
	return result(Password(pw), "password is valid")
}

func result(err error, okReason string) (bool, string) {
	if err != nil {
		return false, err.Error()
	}
	return true, okReason
}

func newError(field string, rule Rule, kind error) *Error {
	return &Error{Field: field, Rule: rule, Reason: reasons[rule], kind: kind}
}

func failedTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

func onlyUsernameChars(s string) bool {
	for _, r := range s {
		if !isASCIILetter(r) && !(r >= '0' && r <= '9') && r != '_' {
			return false
		}
	}
	return s != ""
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}
