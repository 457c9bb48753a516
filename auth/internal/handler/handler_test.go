package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"community-server/auth/internal/mocks"
	"community-server/auth/internal/service"
	"community-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
	auth   *mocks.MockAuthService
	system *mocks.MockSystemService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := &testServer{
		router: gin.New(),
		auth:   mocks.NewMockAuthService(t),
		system: mocks.NewMockSystemService(t),
	}
	NewAuthHandler(s.auth, s.system, zap.NewNop()).RegisterRoutes(s.router, nil)
	return s
}

// authorize makes the session "good-token" resolve to userID.
func (s *testServer) authorize(userID uuid.UUID) {
	claims := &models.Claims{Email: "a@x.com"}
	claims.Subject = userID.String()
	s.auth.On("VerifySession", mock.Anything, "good-token").Return(claims, nil)
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newTestServer(t)
		result := &service.LoginResult{Token: "jwt", ID: uuid.New(), Email: "a@x.com", Role: models.RoleNewbie}
		s.auth.On("Login", mock.Anything, service.LoginInput{Email: "a@x.com", Password: "Abc12345!"}).Return(result, nil)

		w := s.do(http.MethodPost, "/api/auth/login", loginRequest{Email: "a@x.com", Password: "Abc12345!"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var got service.LoginResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "jwt", got.Token)
		assert.Equal(t, models.RoleNewbie, got.Role)
	})

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{models.ErrInvalidCredentials, http.StatusUnauthorized, models.ErrCodeWrongCredentials},
		{models.ErrEmailNotVerified, http.StatusUnauthorized, models.ErrCodeEmailNotVerified},
		{models.ErrAccountDisabled, http.StatusUnauthorized, models.ErrCodeAccountDisabled},
		{models.ErrAccountSuspended, http.StatusUnauthorized, models.ErrCodeAccountSuspended},
		{errors.New("db is down"), http.StatusInternalServerError, models.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := newTestServer(t)
			s.auth.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := s.do(http.MethodPost, "/api/auth/login", loginRequest{Email: "a@x.com", Password: "x"}, "")
			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotContains(t, resp.Message, "db is down")
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestSignupEndpoint(t *testing.T) {
	s := newTestServer(t)
	in := service.SignupInput{Email: "a@x.com", Name: "Alice", Password: "Abc12345!", ConfirmPassword: "Abc12345!"}
	s.auth.On("Signup", mock.Anything, in).Return(&service.SignupResult{
		User:                  models.PublicUser{ID: uuid.New(), Email: "a@x.com", Role: models.RoleNewbie},
		VerificationEmailSent: true,
	}, nil).Once()

	w := s.do(http.MethodPost, "/api/auth/signup", signupRequest{Email: in.Email, Name: in.Name, Password: in.Password, ConfirmPassword: in.ConfirmPassword}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	s.auth.On("Signup", mock.Anything, mock.Anything).Return(nil, models.ErrEmailAlreadyExists).Once()
	w = s.do(http.MethodPost, "/api/auth/signup", signupRequest{Email: in.Email}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeDuplicateEmail, decodeError(t, w).Code)

	s.auth.On("Signup", mock.Anything, mock.Anything).Return(nil, errors.Join(models.ErrValidation, errors.New("password: too short"))).Once()
	w = s.do(http.MethodPost, "/api/auth/signup", signupRequest{Email: in.Email}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeValidation, decodeError(t, w).Code)
}

func TestVerifyEmailEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("VerifyEmail", mock.Anything, "tok-1").Return(nil)
	s.auth.On("VerifyEmail", mock.Anything, "used").Return(models.ErrInvalidVerificationToken)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/auth/verify-email/tok-1", nil, "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/auth/verify-email?token=tok-1", nil, "").Code)

	w := s.do(http.MethodGet, "/api/auth/verify-email/used", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeVerificationFailed, decodeError(t, w).Code)

	w = s.do(http.MethodGet, "/api/auth/verify-email", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendVerificationEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("ResendVerification", mock.Anything, "ghost@x.com").Return(nil)

	w := s.do(http.MethodPost, "/api/auth/verify-email/resend", resendVerificationRequest{Email: "ghost@x.com"}, "")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("VerifySession", mock.Anything, "expired").Return(nil, models.ErrTokenExpired)

	w := s.do(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.ErrCodeTokenInvalid, decodeError(t, w).Code)

	w = s.do(http.MethodGet, "/api/auth/me", nil, "expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.ErrCodeTokenExpired, decodeError(t, w).Code)
	s.auth.AssertNotCalled(t, "GetMe", mock.Anything, mock.Anything)
}

func TestMeEndpoint(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.New()
	s.authorize(userID)
	s.auth.On("GetMe", mock.Anything, userID).Return(&models.PublicUser{ID: userID, Email: "a@x.com", Role: models.RoleMember}, nil)

	w := s.do(http.MethodGet, "/api/auth/me", nil, "good-token")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, userID, got.ID)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestPermissionsEndpoint(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.New()
	board := uuid.New()
	s.authorize(userID)
	s.auth.On("GetPermissions", mock.Anything, userID, &board).Return(&service.PermissionsResult{
		Role:        models.RoleMember,
		Priority:    10,
		Permissions: models.PermissionSet{Read: true, Write: true},
	}, nil)

	w := s.do(http.MethodGet, "/api/me/permissions?board_id="+board.String()+"&capability=write", nil, "good-token")
	require.Equal(t, http.StatusOK, w.Code)
	var got capabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Allowed)

	w = s.do(http.MethodGet, "/api/me/permissions?capability=fly", nil, "good-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/me/permissions?board_id=nope", nil, "good-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBanEndpoints(t *testing.T) {
	s := newTestServer(t)
	modID := uuid.New()
	target := uuid.New()
	s.authorize(modID)

	until := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s.auth.On("BanUser", mock.Anything, modID, target, mock.MatchedBy(func(r *string) bool { return r != nil && *r == "spam" }),
		mock.MatchedBy(func(u *time.Time) bool { return u != nil && u.Equal(until) })).Return(nil).Once()
	reason := "spam"
	w := s.do(http.MethodPost, "/api/users/"+target.String()+"/ban", banRequest{Reason: &reason, Until: &until}, "good-token")
	assert.Equal(t, http.StatusNoContent, w.Code)

	s.auth.On("BanUser", mock.Anything, modID, target, (*string)(nil), (*time.Time)(nil)).Return(models.ErrForbidden).Once()
	w = s.do(http.MethodPost, "/api/users/"+target.String()+"/ban", nil, "good-token")
	assert.Equal(t, http.StatusForbidden, w.Code)

	s.auth.On("UnbanUser", mock.Anything, modID, target).Return(nil).Once()
	w = s.do(http.MethodDelete, "/api/users/"+target.String()+"/ban", nil, "good-token")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, "/api/users/not-a-uuid/ban", nil, "good-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSystemAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	rootID := uuid.New()
	s.authorize(rootID)

	s.system.On("GetAdmin", mock.Anything, rootID).Return(&service.AdminStatus{Exists: false}, nil).Once()
	w := s.do(http.MethodGet, "/system/admin", nil, "good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":false,"admin":null}`, w.Body.String())

	in := service.CreateAdminInput{Email: "b@x.com", Name: "Bob", Password: "Abc12345!"}
	s.system.On("CreateAdmin", mock.Anything, rootID, in).Return(&models.AdminSummary{ID: uuid.New(), Email: "b@x.com"}, nil).Once()
	w = s.do(http.MethodPost, "/system/admin", createAdminRequest{Email: in.Email, Name: in.Name, Password: in.Password}, "good-token")
	assert.Equal(t, http.StatusCreated, w.Code)

	s.system.On("CreateAdmin", mock.Anything, rootID, in).Return(nil, models.ErrAdminAlreadyExists).Once()
	w = s.do(http.MethodPost, "/system/admin", createAdminRequest{Email: in.Email, Name: in.Name, Password: in.Password}, "good-token")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeAdminExists, decodeError(t, w).Code)

	s.system.On("DeleteAdmin", mock.Anything, rootID).Return(int64(1), nil).Once()
	w = s.do(http.MethodDelete, "/system/admin", nil, "good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":1}`, w.Body.String())

	s.system.On("DeleteAdmin", mock.Anything, rootID).Return(int64(0), models.ErrNoAdminToDelete).Once()
	w = s.do(http.MethodDelete, "/system/admin", nil, "good-token")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeNoAdmin, decodeError(t, w).Code)

	s.system.On("GetAdmin", mock.Anything, rootID).Return(nil, models.ErrForbidden).Once()
	w = s.do(http.MethodGet, "/system/admin", nil, "good-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSiteConfigEndpoints(t *testing.T) {
	s := newTestServer(t)
	adminID := uuid.New()
	s.authorize(adminID)
	settingsID := uuid.New()

	s.system.On("GetConfig", mock.Anything).Return(nil, models.ErrNotFound).Once()
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/system/config", nil, "").Code)

	s.system.On("CreateConfig", mock.Anything, adminID, mock.Anything).Return(nil, models.ErrSiteNameRequired).Once()
	w := s.do(http.MethodPost, "/system/config", map[string]interface{}{}, "good-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	name := "Community"
	s.system.On("CreateConfig", mock.Anything, adminID, mock.MatchedBy(func(in models.SiteSettingsInput) bool {
		return in.SiteName != nil && *in.SiteName == name
	})).Return(&models.SiteSettings{ID: settingsID, SiteName: name}, nil).Once()
	w = s.do(http.MethodPost, "/system/config", map[string]interface{}{"siteName": name}, "good-token")
	assert.Equal(t, http.StatusCreated, w.Code)

	s.system.On("UpdateConfig", mock.Anything, adminID, settingsID, mock.Anything).Return(&models.SiteSettings{ID: settingsID, SiteName: name}, nil).Once()
	w = s.do(http.MethodPut, "/system/config/"+settingsID.String(), map[string]interface{}{"siteDescription": "hi"}, "good-token")
	assert.Equal(t, http.StatusOK, w.Code)

	// без токена нельзя
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/system/config", map[string]interface{}{"siteName": name}, "").Code)
}
