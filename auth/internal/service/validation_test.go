package service

import (
	"encoding/json"
	"strings"
	"testing"

	"community-server/shared/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	valid := SignupInput{Email: "a@x.com", Name: "Alice", Password: "Abc12345!", ConfirmPassword: "Abc12345!"}
	assert.NoError(t, ValidateSignup(valid))

	tests := []struct {
		name   string
		mutate func(in *SignupInput)
	}{
		{"bad email", func(in *SignupInput) { in.Email = "not-an-email" }},
		{"empty name", func(in *SignupInput) { in.Name = "" }},
		{"long name", func(in *SignupInput) { in.Name = strings.Repeat("a", 51) }},
		{"short password", func(in *SignupInput) { in.Password, in.ConfirmPassword = "Ab1", "Ab1" }},
		{"no digit", func(in *SignupInput) { in.Password, in.ConfirmPassword = "Abcdefgh", "Abcdefgh" }},
		{"no letter", func(in *SignupInput) { in.Password, in.ConfirmPassword = "12345678", "12345678" }},
		{"too long", func(in *SignupInput) { p := strings.Repeat("a1", 37); in.Password, in.ConfirmPassword = p, p }},
		{"mismatch", func(in *SignupInput) { in.ConfirmPassword = "Abc12345?" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := ValidateSignup(in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin(LoginInput{Email: "a@x.com", Password: "x"}))
	assert.ErrorIs(t, ValidateLogin(LoginInput{Email: "", Password: "x"}), models.ErrValidation)
	assert.ErrorIs(t, ValidateLogin(LoginInput{Email: "a@x.com"}), models.ErrValidation)
}

func TestValidateCreateAdmin(t *testing.T) {
	assert.NoError(t, ValidateCreateAdmin(CreateAdminInput{Email: "b@x.com", Name: "Bob", Password: "Abc12345!"}))
	assert.ErrorIs(t, ValidateCreateAdmin(CreateAdminInput{Email: "b@x.com", Name: "Bob", Password: "weak"}), models.ErrValidation)
}

func TestValidateSiteConfig(t *testing.T) {
	name := "Community"
	blank := "  "

	assert.ErrorIs(t, ValidateSiteConfig(models.SiteSettingsInput{}, true), models.ErrSiteNameRequired)
	assert.ErrorIs(t, ValidateSiteConfig(models.SiteSettingsInput{SiteName: &blank}, true), models.ErrSiteNameRequired)
	assert.NoError(t, ValidateSiteConfig(models.SiteSettingsInput{SiteName: &name}, true))

	// update может не трогать имя
	assert.NoError(t, ValidateSiteConfig(models.SiteSettingsInput{}, false))
	assert.ErrorIs(t, ValidateSiteConfig(models.SiteSettingsInput{SiteName: &blank}, false), models.ErrSiteNameRequired)

	withTheme := models.SiteSettingsInput{SiteName: &name, ThemeConfig: json.RawMessage(`{"primary":"#000"}`)}
	assert.NoError(t, ValidateSiteConfig(withTheme, true))

	notObject := models.SiteSettingsInput{SiteName: &name, SeoConfig: json.RawMessage(`[1,2]`)}
	assert.ErrorIs(t, ValidateSiteConfig(notObject, true), models.ErrValidation)
}
