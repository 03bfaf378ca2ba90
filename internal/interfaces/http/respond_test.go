package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

func TestRespondError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: falta el archivo", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("escenario: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrInsufficientStock, http.StatusConflict},
		{domain.ErrAINotConfigured, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusRequestTimeout},
		{errors.New("conexión rechazada"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })

		resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, testErr)
		assert.Equal(t, tc.status, resp.StatusCode, err.Error())
		resp.Body.Close()
	}
}

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Qty   int    `query:"qty" validate:"min=1"`
}

func TestValidateStruct_UsesWireNames(t *testing.T) {
	assert.Equal(t, "name: campo obligatorio", validateStruct(&sample{Qty: 1}))
	assert.Equal(t, "email: email inválido", validateStruct(&sample{Name: "x", Email: "nope", Qty: 1}))
	assert.Equal(t, "qty: mínimo 1", validateStruct(&sample{Name: "x"}))
	assert.Empty(t, validateStruct(&sample{Name: "x", Qty: 2}))
}

func TestSendFile_SetsAttachment(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return sendFile(c, []byte("%PDF"), "application/pdf", "facture.pdf")
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="facture.pdf"`, resp.Header.Get("Content-Disposition"))
}

func TestWriteChange_SSEFraming(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, writeChange(w, entity.ChangeEvent{Table: "tasks", Action: entity.ChangeUpdate, ID: "t1"}))

	out := buf.String()
	assert.Contains(t, out, "event: change\ndata: {")
	assert.Contains(t, out, `"table":"tasks"`)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n\n")))
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestLogger(logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return respondError(c, domain.ErrNotFound) })

	for _, path := range []string{"/health", "/missing"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	out := buf.String()
	assert.NotContains(t, out, `"/health"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"path":"/missing"`)
	assert.Contains(t, out, `"status":404`)
}
