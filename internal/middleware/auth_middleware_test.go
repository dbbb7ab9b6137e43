package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockUserRepo implements repository.UserRepository over a map.
type mockUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	return nil
}

func newUser(role model.Role, active bool) *model.User {
	u := &model.User{Name: string(role), Email: string(role) + "@example.com", Role: role, Active: active}
	u.ID = uuid.New()
	return u
}

func TestRequireAuthAndRole(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	admin := newUser(model.RoleAdmin, true)
	seller := newUser(model.RoleSalesperson, true)
	disabled := newUser(model.RoleManager, false)
	ghost := newUser(model.RoleAdmin, true)

	repo := &mockUserRepo{users: map[uuid.UUID]*model.User{
		admin.ID:    admin,
		seller.ID:   seller,
		disabled.ID: disabled,
	}}

	app := fiber.New()
	app.Get("/me", RequireAuth(repo, tokens), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Email + "|" + CurrentUserID(c))
	})
	app.Get("/admin", RequireAuth(repo, tokens), RequireRole(model.RoleAdmin, model.RoleManager), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	bearer := func(u *model.User) string {
		tok, err := tokens.GenerateToken(u.ID, string(u.Role))
		require.NoError(t, err)
		return "Bearer " + tok
	}
	expired := jwt.NewManager("test-secret", -time.Minute)
	expiredTok, err := expired.GenerateToken(admin.ID, "admin")
	require.NoError(t, err)

	tests := []struct {
		name           string
		path           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{"missing header", "/me", "", http.StatusUnauthorized, "Missing authorization token"},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized, "Invalid authorization format"},
		{"garbage token", "/me", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"expired token", "/me", "Bearer " + expiredTok, http.StatusUnauthorized, "Invalid or expired token"},
		{"unknown user", "/me", bearer(ghost), http.StatusUnauthorized, "User not found"},
		{"inactive user", "/me", bearer(disabled), http.StatusUnauthorized, "inactive"},
		{"valid", "/me", bearer(seller), http.StatusOK, seller.Email + "|" + seller.ID.String()},
		{"lowercase scheme", "/me", "bearer " + bearer(seller)[7:], http.StatusOK, seller.Email},
		{"role allowed", "/admin", bearer(admin), http.StatusOK, "ok"},
		{"role forbidden", "/admin", bearer(seller), http.StatusForbidden, "salesperson"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.expectedBody)
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
