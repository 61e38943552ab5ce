package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/security"
)

func TestTokenDocumentUploadWithoutSecret(t *testing.T) {
	t.Setenv("UPLOAD_TOKEN_SECRET", "")

	app := fiber.New()
	app.Post("/api/v1/documents/upload", HandleTokenDocumentUpload)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/documents/upload", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestTokenDocumentUploadRejectsInvalidToken(t *testing.T) {
	t.Setenv("UPLOAD_TOKEN_SECRET", "test-secret")

	app := fiber.New()
	app.Post("/api/v1/documents/upload", HandleTokenDocumentUpload)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/documents/upload", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTokenDocumentUploadRejectsExpiredToken(t *testing.T) {
	t.Setenv("UPLOAD_TOKEN_SECRET", "test-secret")

	token, err := security.GenerateUploadToken(1, 1, 1<<20, -time.Minute, "test-secret")
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/api/v1/documents/upload", HandleTokenDocumentUpload)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/documents/upload", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
