package service_test

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"community-server/auth/internal/service"
	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

// memStore - простое хранилище в памяти для сквозных сценариев.
type memStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*models.User
	roles  map[models.RoleName]*models.Role
	tokens map[string]uuid.UUID
	mail   []models.EmailMessage
}

var (
	_ interfaces.UserRepository              = (*memUsers)(nil)
	_ interfaces.RoleRepository              = (*memRoles)(nil)
	_ interfaces.VerificationTokenRepository = (*memTokens)(nil)
	_ interfaces.Notifier                    = (*memMail)(nil)
)

func newMemStore() *memStore {
	s := &memStore{
		users:  map[uuid.UUID]*models.User{},
		roles:  map[models.RoleName]*models.Role{},
		tokens: map[string]uuid.UUID{},
	}
	for _, def := range models.RoleCatalog() {
		s.roles[def.Name] = &models.Role{ID: uuid.New(), Name: def.Name, DisplayName: def.DisplayName, Priority: def.Priority()}
	}
	return s
}

type memUsers struct{ s *memStore }

func (r memUsers) roleName(id uuid.UUID) models.RoleName {
	for _, role := range r.s.roles {
		if role.ID == id {
			return role.Name
		}
	}
	return ""
}

func (r memUsers) insert(u *models.NewUser) (*models.User, error) {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, models.ErrEmailAlreadyExists
		}
	}
	created := &models.User{
		ID: uuid.New(), Email: u.Email, Name: u.Name, PasswordHash: u.PasswordHash,
		RoleID: u.RoleID, RoleName: r.roleName(u.RoleID), IsActive: true,
		IsEmailVerified: u.IsEmailVerified, CreatedAt: time.Now(),
	}
	r.s.users[created.ID] = created
	cp := *created
	return &cp, nil
}

func (r memUsers) CreateUser(_ context.Context, u *models.NewUser) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(u)
}

func (r memUsers) CreateSoleRoleHolder(_ context.Context, u *models.NewUser) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.RoleID == u.RoleID {
			return nil, models.ErrRoleAlreadyHeld
		}
	}
	return r.insert(u)
}

func (r memUsers) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r memUsers) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r memUsers) GetFirstUserByRole(_ context.Context, role models.RoleName) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.RoleName == role })
}

func (r memUsers) CountUsersByRole(_ context.Context, role models.RoleName) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.users {
		if u.RoleName == role {
			n++
		}
	}
	return n, nil
}

func (r memUsers) DeleteUsersByRole(_ context.Context, roleID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, u := range r.s.users {
		if u.RoleID == roleID {
			delete(r.s.users, id)
			n++
		}
	}
	return n, nil
}

func (r memUsers) update(id uuid.UUID, fn func(u *models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	fn(u)
	return nil
}

func (r memUsers) MarkEmailVerified(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.update(id, func(u *models.User) { u.IsEmailVerified, u.EmailVerifiedAt = true, &at })
}

func (r memUsers) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.update(id, func(u *models.User) { u.LastLoginAt = &at })
}

func (r memUsers) SetBanStatus(_ context.Context, id uuid.UUID, banned bool, reason *string, until *time.Time) error {
	return r.update(id, func(u *models.User) { u.IsBanned, u.BannedReason, u.BannedUntil = banned, reason, until })
}

type memRoles struct{ s *memStore }

func (r memRoles) CountRoles(context.Context) (int64, error) { return int64(len(r.s.roles)), nil }

func (r memRoles) GetRoleByName(_ context.Context, name models.RoleName) (*models.Role, error) {
	role, ok := r.s.roles[name]
	if !ok {
		return nil, models.ErrRoleNotFound
	}
	return role, nil
}

func (r memRoles) ListRoles(context.Context) ([]models.Role, error) { return nil, nil }

func (r memRoles) SeedRoles(context.Context, []models.RoleDefinition) (bool, error) {
	return false, nil
}

func (r memRoles) ListPermissions(_ context.Context, roleID uuid.UUID) ([]models.Permission, error) {
	for _, def := range models.RoleCatalog() {
		if r.s.roles[def.Name].ID == roleID {
			p := def.Permissions
			return []models.Permission{{RoleID: roleID, CanRead: b(p.Read), CanWrite: b(p.Write), CanComment: b(p.Comment)}}, nil
		}
	}
	return nil, nil
}

func b(v bool) int {
	if v {
		return 1
	}
	return 0
}

type memTokens struct{ s *memStore }

func (r memTokens) Save(_ context.Context, token string, userID uuid.UUID, _ time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for t, owner := range r.s.tokens {
		if owner == userID {
			delete(r.s.tokens, t)
		}
	}
	r.s.tokens[token] = userID
	return nil
}

func (r memTokens) Consume(_ context.Context, token string) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.s.tokens[token]
	if !ok {
		return uuid.Nil, models.ErrTokenNotFound
	}
	delete(r.s.tokens, token)
	return id, nil
}

type memMail struct{ s *memStore }

func (m memMail) Send(_ context.Context, msg models.EmailMessage) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.mail = append(m.s.mail, msg)
	return nil
}

var linkPattern = regexp.MustCompile(`/verify-email/([0-9a-f-]{36})`)

func (s *memStore) lastToken(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.mail)
	m := linkPattern.FindStringSubmatch(s.mail[len(s.mail)-1].HTML)
	require.Len(t, m, 2)
	return m[1]
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	store := newMemStore()
	users := memUsers{store}

	sessions, err := service.NewJWTIssuer("flow-secret", service.SessionTTL, "community")
	require.NoError(t, err)
	verifier := service.NewEmailVerifier(memTokens{store}, users, memMail{store}, time.Hour, "https://site.example", logger)
	svc := service.NewAuthService(users, memRoles{store}, verifier, service.NewBcryptHasher(bcrypt.MinCost, ""), sessions, logger)

	signup, err := svc.Signup(ctx, service.SignupInput{Email: "a@x.com", Name: "Alice", Password: "Abc12345!", ConfirmPassword: "Abc12345!"})
	require.NoError(t, err)
	assert.True(t, signup.VerificationEmailSent)

	_, err = svc.Login(ctx, service.LoginInput{Email: "a@x.com", Password: "Abc12345!"})
	assert.ErrorIs(t, err, models.ErrEmailNotVerified)

	// Повторная отправка отзывает первую ссылку
	first := store.lastToken(t)
	require.NoError(t, svc.ResendVerification(ctx, "a@x.com"))
	second := store.lastToken(t)
	assert.NotEqual(t, first, second)
	assert.ErrorIs(t, svc.VerifyEmail(ctx, first), models.ErrInvalidVerificationToken)

	require.NoError(t, svc.VerifyEmail(ctx, second))
	assert.ErrorIs(t, svc.VerifyEmail(ctx, second), models.ErrInvalidVerificationToken, "token is single use")

	res, err := svc.Login(ctx, service.LoginInput{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleNewbie, res.Role)

	claims, err := svc.VerifySession(ctx, res.Token)
	require.NoError(t, err)
	me, err := svc.GetMe(ctx, uuid.MustParse(claims.Subject))
	require.NoError(t, err)
	assert.True(t, me.IsEmailVerified)
	assert.NotNil(t, me.LastLoginAt)

	_, err = svc.Signup(ctx, service.SignupInput{Email: "a@x.com", Name: "Other", Password: "Abc12345!", ConfirmPassword: "Abc12345!"})
	assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)

	can, err := svc.Can(ctx, res.ID, nil, models.CapabilityWrite)
	require.NoError(t, err)
	assert.False(t, can, "newbies cannot write")
	assert.True(t, strings.HasPrefix(res.Token, "ey"))
}
