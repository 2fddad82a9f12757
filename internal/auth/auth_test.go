package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: "u-1", Name: "Ana", Email: "ana@example.com", Role: models.RoleOwner}
	token, err := GenerateToken(secret, user)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, models.RoleOwner, claims.Role)

	_, err = ParseToken("another-secret-another-secret-xx", token)
	assert.Error(t, err)
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/owner-only", JWTMiddleware(secret), RequireRole(models.RoleOwner), func(c *fiber.Ctx) error {
		id, name := Actor(c)
		return c.SendString(id + ":" + name)
	})
	return app
}

func TestMiddleware(t *testing.T) {
	app := protectedApp()

	owner, err := GenerateToken(secret, &models.User{ID: "u-1", Name: "Ana", Role: models.RoleOwner})
	require.NoError(t, err)
	manager, err := GenerateToken(secret, &models.User{ID: "u-2", Name: "Bia", Role: models.RoleManager})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"manager", "Bearer " + manager, http.StatusForbidden},
		{"owner", "Bearer " + owner, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/owner-only", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
