package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifreela/api/internal/sessions"
	"github.com/unifreela/api/internal/utils"
)

const segredo = "segredo-de-teste"

func appProtegido(t *testing.T, store *sessions.Store, roles ...string) *fiber.App {
	t.Helper()
	app := fiber.New()
	grupo := app.Group("/",
		JWTFromCookie(segredo, store),
		AttachJWTLocals(),
	)
	handler := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	}
	if len(roles) > 0 {
		grupo.Get("/recurso", RequireRoles(roles...), handler)
	} else {
		grupo.Get("/recurso", handler)
	}
	return app
}

func corpoJSON(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&m))
	return m
}

func TestSemCookie(t *testing.T) {
	app := appProtegido(t, nil)

	req := httptest.NewRequest("GET", "/recurso", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	m := corpoJSON(t, resp.Body)
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "Acesso negado.", m["error"])
}

func TestTokenInvalido(t *testing.T) {
	app := appProtegido(t, nil)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token=nao-e-um-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTokenValidoPassa(t *testing.T) {
	app := appProtegido(t, nil)

	token, err := utils.SignJWT(segredo, "user-1", "Maria", "USER", "maria@example.com", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token="+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := corpoJSON(t, resp.Body)
	assert.Equal(t, "user-1", m["userId"])
	assert.Equal(t, "USER", m["role"])
}

func TestTokenExpirado(t *testing.T) {
	app := appProtegido(t, nil)

	token, err := utils.SignJWT(segredo, "user-1", "Maria", "USER", "maria@example.com", -5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token="+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoleErrada(t *testing.T) {
	app := appProtegido(t, nil, "ADMIN")

	token, err := utils.SignJWT(segredo, "user-1", "Maria", "USER", "maria@example.com", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token="+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	m := corpoJSON(t, resp.Body)
	assert.Equal(t, "Acesso negado.", m["error"])
}

func TestRoleCerta(t *testing.T) {
	app := appProtegido(t, nil, "ADMIN")

	token, err := utils.SignJWT(segredo, "adm-1", "Ana", "ADMIN", "ana@example.com", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token="+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTokenRevogado(t *testing.T) {
	mr := miniredis.RunT(t)
	store := sessions.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	app := appProtegido(t, store)

	token, err := utils.SignJWT(segredo, "user-1", "Maria", "USER", "maria@example.com", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token="+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	claims, err := utils.ParseJWT(segredo, token)
	require.NoError(t, err)
	require.NoError(t, store.RevogarToken(context.Background(), claims.ID, claims.ExpiresAt.Time))

	req = httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token="+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUsuarioRevogado(t *testing.T) {
	mr := miniredis.RunT(t)
	store := sessions.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	app := appProtegido(t, store)

	token, err := utils.SignJWT(segredo, "user-1", "Maria", "USER", "maria@example.com", 60)
	require.NoError(t, err)
	require.NoError(t, store.RevogarUsuario(context.Background(), "user-1", time.Hour))

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Cookie", "token="+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
