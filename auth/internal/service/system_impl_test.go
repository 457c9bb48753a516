package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"community-server/auth/internal/mocks"
	"community-server/auth/internal/service"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type systemFixture struct {
	users    *mocks.MockUserRepository
	roles    *mocks.MockRoleRepository
	settings *mocks.MockSiteSettingsRepository
	svc      service.SystemService

	sysadmin *models.User
	admin    *models.User
	member   *models.User
}

func newSystemFixture(t *testing.T) *systemFixture {
	t.Helper()
	f := &systemFixture{
		users:    mocks.NewMockUserRepository(t),
		roles:    mocks.NewMockRoleRepository(t),
		settings: mocks.NewMockSiteSettingsRepository(t),
		sysadmin: &models.User{ID: uuid.New(), Email: "root@x.com", RoleName: models.RoleSystemAdmin},
		admin:    &models.User{ID: uuid.New(), Email: "admin@x.com", Name: "Admin", RoleName: models.RoleAdmin, CreatedAt: time.Now()},
		member:   &models.User{ID: uuid.New(), Email: "m@x.com", RoleName: models.RoleMember},
	}
	f.svc = service.NewSystemService(f.users, f.roles, f.settings, service.NewBcryptHasher(bcrypt.MinCost, ""), zap.NewNop())

	for _, u := range []*models.User{f.sysadmin, f.admin, f.member} {
		f.users.On("GetUserByID", mock.Anything, u.ID).Return(u, nil).Maybe()
	}
	return f
}

func TestIsSystemAdmin(t *testing.T) {
	ctx := context.Background()
	f := newSystemFixture(t)
	ghost := uuid.New()
	f.users.On("GetUserByID", ctx, ghost).Return(nil, models.ErrUserNotFound)

	ok, err := f.svc.IsSystemAdmin(ctx, f.sysadmin.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, id := range []uuid.UUID{f.admin.ID, f.member.ID, ghost} {
		ok, err := f.svc.IsSystemAdmin(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestGetAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("none yet", func(t *testing.T) {
		f := newSystemFixture(t)
		f.users.On("GetFirstUserByRole", ctx, models.RoleAdmin).Return(nil, models.ErrUserNotFound)

		status, err := f.svc.GetAdmin(ctx, f.sysadmin.ID)
		require.NoError(t, err)
		assert.False(t, status.Exists)
		assert.Nil(t, status.Admin)
	})

	t.Run("exists", func(t *testing.T) {
		f := newSystemFixture(t)
		f.users.On("GetFirstUserByRole", ctx, models.RoleAdmin).Return(f.admin, nil)

		status, err := f.svc.GetAdmin(ctx, f.sysadmin.ID)
		require.NoError(t, err)
		assert.True(t, status.Exists)
		assert.Equal(t, "admin@x.com", status.Admin.Email)
	})

	t.Run("admin is not system admin", func(t *testing.T) {
		f := newSystemFixture(t)
		_, err := f.svc.GetAdmin(ctx, f.admin.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	adminRole := &models.Role{ID: uuid.New(), Name: models.RoleAdmin, Priority: 90}
	input := service.CreateAdminInput{Email: "b@x.com", Name: "Bob", Password: "Abc12345!"}

	t.Run("success", func(t *testing.T) {
		f := newSystemFixture(t)
		created := &models.User{ID: uuid.New(), Email: "b@x.com", Name: "Bob", RoleName: models.RoleAdmin, IsEmailVerified: true}

		f.users.On("CountUsersByRole", ctx, models.RoleAdmin).Return(int64(0), nil).Once()
		f.users.On("GetUserByEmail", ctx, "b@x.com").Return(nil, models.ErrUserNotFound).Once()
		f.roles.On("GetRoleByName", ctx, models.RoleAdmin).Return(adminRole, nil).Once()
		f.users.On("CreateSoleRoleHolder", ctx, mock.MatchedBy(func(u *models.NewUser) bool {
			return u.Email == "b@x.com" && u.RoleID == adminRole.ID && u.IsEmailVerified && u.PasswordHash != ""
		})).Return(created, nil).Once()

		summary, err := f.svc.CreateAdmin(ctx, f.sysadmin.ID, input)
		require.NoError(t, err)
		assert.Equal(t, created.ID, summary.ID)
		assert.Equal(t, "Bob", summary.Name)
		f.users.AssertExpectations(t)
	})

	t.Run("admin already exists", func(t *testing.T) {
		f := newSystemFixture(t)
		f.users.On("CountUsersByRole", ctx, models.RoleAdmin).Return(int64(1), nil)

		_, err := f.svc.CreateAdmin(ctx, f.sysadmin.ID, input)
		assert.ErrorIs(t, err, models.ErrAdminAlreadyExists)
		assert.Equal(t, models.KindConflict, models.KindOf(err))
		f.users.AssertNotCalled(t, "CreateSoleRoleHolder", mock.Anything, mock.Anything)
	})

	t.Run("email in use", func(t *testing.T) {
		f := newSystemFixture(t)
		f.users.On("CountUsersByRole", ctx, models.RoleAdmin).Return(int64(0), nil)
		f.users.On("GetUserByEmail", ctx, "b@x.com").Return(f.member, nil)

		_, err := f.svc.CreateAdmin(ctx, f.sysadmin.ID, input)
		assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)
	})

	t.Run("lost race", func(t *testing.T) {
		f := newSystemFixture(t)
		f.users.On("CountUsersByRole", ctx, models.RoleAdmin).Return(int64(0), nil)
		f.users.On("GetUserByEmail", ctx, "b@x.com").Return(nil, models.ErrUserNotFound)
		f.roles.On("GetRoleByName", ctx, models.RoleAdmin).Return(adminRole, nil)
		f.users.On("CreateSoleRoleHolder", ctx, mock.Anything).Return(nil, models.ErrRoleAlreadyHeld)

		_, err := f.svc.CreateAdmin(ctx, f.sysadmin.ID, input)
		assert.ErrorIs(t, err, models.ErrAdminAlreadyExists)
	})

	t.Run("forbidden for admin", func(t *testing.T) {
		f := newSystemFixture(t)
		_, err := f.svc.CreateAdmin(ctx, f.admin.ID, input)
		assert.ErrorIs(t, err, models.ErrForbidden)
		f.users.AssertNotCalled(t, "CountUsersByRole", mock.Anything, mock.Anything)
	})

	t.Run("weak password", func(t *testing.T) {
		f := newSystemFixture(t)
		bad := input
		bad.Password = "short"
		_, err := f.svc.CreateAdmin(ctx, f.sysadmin.ID, bad)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestDeleteAdmin(t *testing.T) {
	ctx := context.Background()
	adminRole := &models.Role{ID: uuid.New(), Name: models.RoleAdmin}

	t.Run("deletes", func(t *testing.T) {
		f := newSystemFixture(t)
		f.roles.On("GetRoleByName", ctx, models.RoleAdmin).Return(adminRole, nil)
		f.users.On("DeleteUsersByRole", ctx, adminRole.ID).Return(int64(1), nil).Once()

		n, err := f.svc.DeleteAdmin(ctx, f.sysadmin.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		f := newSystemFixture(t)
		f.roles.On("GetRoleByName", ctx, models.RoleAdmin).Return(adminRole, nil)
		f.users.On("DeleteUsersByRole", ctx, adminRole.ID).Return(int64(0), nil)

		_, err := f.svc.DeleteAdmin(ctx, f.sysadmin.ID)
		assert.ErrorIs(t, err, models.ErrNoAdminToDelete)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		f := newSystemFixture(t)
		_, err := f.svc.DeleteAdmin(ctx, f.member.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
		f.users.AssertNotCalled(t, "DeleteUsersByRole", mock.Anything, mock.Anything)
	})
}

func TestSiteConfig(t *testing.T) {
	ctx := context.Background()
	name := "Community"
	stored := &models.SiteSettings{ID: uuid.New(), SiteName: name, ThemeConfig: json.RawMessage(`{}`)}

	t.Run("get is public", func(t *testing.T) {
		f := newSystemFixture(t)
		f.settings.On("Get", ctx).Return(stored, nil)
		got, err := f.svc.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, name, got.SiteName)
	})

	t.Run("get without row", func(t *testing.T) {
		f := newSystemFixture(t)
		f.settings.On("Get", ctx).Return(nil, models.ErrNotFound)
		_, err := f.svc.GetConfig(ctx)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("create requires site name", func(t *testing.T) {
		f := newSystemFixture(t)
		_, err := f.svc.CreateConfig(ctx, f.admin.ID, models.SiteSettingsInput{})
		assert.ErrorIs(t, err, models.ErrSiteNameRequired)
		f.settings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin creates", func(t *testing.T) {
		f := newSystemFixture(t)
		in := models.SiteSettingsInput{SiteName: &name}
		f.settings.On("Create", ctx, in).Return(stored, nil).Once()

		got, err := f.svc.CreateConfig(ctx, f.admin.ID, in)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
	})

	t.Run("member cannot create", func(t *testing.T) {
		f := newSystemFixture(t)
		_, err := f.svc.CreateConfig(ctx, f.member.ID, models.SiteSettingsInput{SiteName: &name})
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("update unknown id", func(t *testing.T) {
		f := newSystemFixture(t)
		id := uuid.New()
		desc := "new"
		in := models.SiteSettingsInput{SiteDescription: &desc}
		f.settings.On("Update", ctx, id, in).Return(nil, models.ErrNotFound)

		_, err := f.svc.UpdateConfig(ctx, f.sysadmin.ID, id, in)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Equal(t, models.KindNotFound, models.KindOf(err))
	})
}
