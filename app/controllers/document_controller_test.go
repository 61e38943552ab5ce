package controllers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

func TestCalculateFileHash(t *testing.T) {
	const input = "evidence-upload"

	got, err := calculateFileHash(strings.NewReader(input))
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(input))
	want := hex.EncodeToString(sum[:])
	assert.Equal(t, want, got)
}

func TestDocumentUploadParseForm_Success(t *testing.T) {
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		w := &documentUploadWorkflow{c: c}
		form, file, err := w.parseUploadForm()
		require.NoError(t, err)
		require.NotNil(t, form)
		require.NotNil(t, file)
		assert.Equal(t, "evidence.pdf", file.Filename)
		_ = form.RemoveAll()
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := newMultipartUploadRequest(t, true)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDocumentUploadParseForm_MissingFile(t *testing.T) {
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		w := &documentUploadWorkflow{c: c}
		_, _, err := w.parseUploadForm()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errUploadResponseHandled))
		return nil
	})

	req := newMultipartUploadRequest(t, false)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/user/plans", resp.Header.Get("Location"))
}

func TestDocumentUploadRunUnauthorized(t *testing.T) {
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		w := &documentUploadWorkflow{
			c:       c,
			userCtx: usercontext.UserContext{IsLoggedIn: false},
		}
		return w.run()
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Equal(t, "Unauthorized", string(body))
}

func TestRespondUploadErrorHTMX(t *testing.T) {
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		return respondUploadError(c, fiber.StatusForbidden, "quota reached", "/pricing")
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set("HX-Request", "true")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Equal(t, "quota reached", string(body))
}

func TestRespondUploadErrorRedirect(t *testing.T) {
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		return respondUploadError(c, fiber.StatusForbidden, "quota reached", "/pricing")
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/pricing", resp.Header.Get("Location"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KB", formatBytes(1024))
	assert.Equal(t, "10.0 MB", formatBytes(10<<20))
}

func newMultipartUploadRequest(t *testing.T, withFile bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if withFile {
		part, err := writer.CreateFormFile("file", "evidence.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
