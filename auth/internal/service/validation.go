package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"community-server/shared/models"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything after 72 bytes.
	maxPasswordLength = 72
	maxNameLength     = 50
	maxEmailLength    = 254
)

// SignupInput is the signup request.
type SignupInput struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginInput is the login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAdminInput is the admin account to create.
type CreateAdminInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

var passwordRules = []validation.Rule{
	validation.Required,
	validation.Length(minPasswordLength, maxPasswordLength),
	validation.By(letterAndDigit),
}

func letterAndDigit(value interface{}) error {
	s, _ := value.(string)
	var hasLetter, hasDigit bool
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("must contain at least one letter and one digit")
	}
	return nil
}

var emailRules = []validation.Rule{validation.Required, validation.Length(3, maxEmailLength), is.Email}

var nameRules = []validation.Rule{validation.Required, validation.Length(1, maxNameLength)}

// ValidateSignup checks a signup request.
func ValidateSignup(in SignupInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules...),
		validation.Field(&in.Name, nameRules...),
		validation.Field(&in.Password, passwordRules...),
		validation.Field(&in.ConfirmPassword, validation.Required, validation.In(in.Password).Error("passwords do not match")),
	)
	return wrapValidation(err)
}

// ValidateLogin only checks presence; credential checks belong to Login.
func ValidateLogin(in LoginInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
	return wrapValidation(err)
}

// ValidateCreateAdmin checks the admin account payload.
func ValidateCreateAdmin(in CreateAdminInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules...),
		validation.Field(&in.Name, nameRules...),
		validation.Field(&in.Password, passwordRules...),
	)
	return wrapValidation(err)
}

// ValidateSiteConfig checks a settings payload. site_name is mandatory on create only.
func ValidateSiteConfig(in models.SiteSettingsInput, creating bool) error {
	if creating && (in.SiteName == nil || strings.TrimSpace(*in.SiteName) == "") {
		return models.ErrSiteNameRequired
	}
	if in.SiteName != nil && strings.TrimSpace(*in.SiteName) == "" {
		return models.ErrSiteNameRequired
	}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.ThemeConfig, validation.By(jsonObject)),
		validation.Field(&in.PermissionConfig, validation.By(jsonObject)),
		validation.Field(&in.FeaturesConfig, validation.By(jsonObject)),
		validation.Field(&in.SeoConfig, validation.By(jsonObject)),
	)
	return wrapValidation(err)
}

func jsonObject(value interface{}) error {
	raw, _ := value.(json.RawMessage)
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return errors.New("must be a JSON object")
	}
	return nil
}

// wrapValidation tags ozzo errors with models.ErrValidation.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
}
