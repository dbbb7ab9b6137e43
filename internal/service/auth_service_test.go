package service

import (
	"context"
	"testing"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAuth(t *testing.T) (*env, AuthService, *jwt.Manager) {
	e := newEnv(t)
	tokens := jwt.NewManager("test-secret", time.Hour)
	return e, NewAuthService(e.users, tokens, zaptest.NewLogger(t)), tokens
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	e, auth, tokens := newAuth(t)
	ctx := context.Background()

	resp, err := auth.Register(ctx, &RegisterRequest{
		Name:     "Laura",
		Email:    "  Laura@Example.com ",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "laura@example.com", resp.User.Email)
	assert.Equal(t, model.RoleSalesperson, resp.User.Role)
	assert.Equal(t, model.UserBranch(model.BranchAll), resp.User.Branch)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "salesperson", claims.Role)

	stored, err := e.users.FindByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)

	login, err := auth.Login(ctx, "LAURA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	me, err := auth.Me(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laura", me.Name)
}

func TestAuth_RegisterValidation(t *testing.T) {
	_, auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, &RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"duplicate email", RegisterRequest{Name: "B", Email: "A@example.com", Password: "secret1"}},
		{"short password", RegisterRequest{Name: "B", Email: "b@example.com", Password: "123"}},
		{"bad email", RegisterRequest{Name: "B", Email: "not-an-email", Password: "secret1"}},
		{"bad role", RegisterRequest{Name: "B", Email: "b@example.com", Password: "secret1", Role: "owner"}},
		{"bad branch", RegisterRequest{Name: "B", Email: "b@example.com", Password: "secret1", Branch: "Lima"}},
		{"missing name", RegisterRequest{Email: "b@example.com", Password: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := auth.Register(ctx, &req)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestAuth_LoginFailures(t *testing.T) {
	e, auth, _ := newAuth(t)
	ctx := context.Background()

	inactive := &model.User{Name: "Off", Email: "off@example.com", Role: model.RoleManager, Branch: "Cali Sur"}
	require.NoError(t, inactive.SetPassword("secret1"))
	require.NoError(t, e.users.Create(ctx, inactive))

	_, err := auth.Register(ctx, &RegisterRequest{Name: "On", Email: "on@example.com", Password: "secret1"})
	require.NoError(t, err)

	var ae *AuthError

	_, err = auth.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorAs(t, err, &ae)
	assert.False(t, ae.Forbidden)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "on@example.com", "wrong-password")
	require.ErrorAs(t, err, &ae)
	assert.False(t, ae.Forbidden)

	_, err = auth.Login(ctx, "off@example.com", "secret1")
	require.ErrorAs(t, err, &ae)
	assert.True(t, ae.Forbidden)
	assert.ErrorIs(t, err, ErrUserInactive)

	_, err = auth.Login(ctx, "", "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = auth.Me(ctx, uuid.New())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestAuth_SeedAdminAndReset(t *testing.T) {
	_, auth, _ := newAuth(t)
	ctx := context.Background()

	created, err := auth.SeedAdmin(ctx, "Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = auth.SeedAdmin(ctx, "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := auth.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	require.NoError(t, auth.ResetPassword(ctx, "admin@example.com", "n3wpass"))
	_, err = auth.Login(ctx, "admin@example.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "admin@example.com", "n3wpass")
	assert.NoError(t, err)

	assert.ErrorIs(t, auth.ResetPassword(ctx, "ghost@example.com", "n3wpass"), ErrUserNotFound)
	var ve *ValidationError
	assert.ErrorAs(t, auth.ResetPassword(ctx, "admin@example.com", "123"), &ve)
}
