package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrorsAdd(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "Insira um email válido")
	errs.Add("email", "E-mail já cadastrado")
	errs.Add("senha", "A senha deve ter no mínimo 6 caracteres")

	assert.Len(t, errs["email"], 2)
	assert.Len(t, errs["senha"], 1)
}

func TestPaginacao(t *testing.T) {
	app := fiber.New()
	var page, limit, offset int
	app.Get("/x", func(c *fiber.Ctx) error {
		page, limit, offset = paginacao(c)
		return c.SendStatus(fiber.StatusOK)
	})

	casos := []struct {
		url                 string
		page, limit, offset int
	}{
		{"/x", 1, 9, 0},
		{"/x?page=3", 3, 9, 18},
		{"/x?page=2&limit=20", 2, 20, 20},
		{"/x?page=0&limit=0", 1, 9, 0},
		{"/x?limit=1000", 1, 9, 0},
	}

	for _, tc := range casos {
		resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, tc.page, page, tc.url)
		assert.Equal(t, tc.limit, limit, tc.url)
		assert.Equal(t, tc.offset, offset, tc.url)
	}
}

func TestGetUserUUIDSemLocal(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		_, err := getUserUUID(c)
		require.Error(t, err)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
