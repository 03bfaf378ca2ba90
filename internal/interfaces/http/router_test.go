package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
	apphttp "github.com/jhoicas/vanbuilder-api/internal/interfaces/http"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
	pkgjwt "github.com/jhoicas/vanbuilder-api/pkg/jwt"
)

func newRoutedApp() *fiber.App {
	projects := memrepo.NewProjects()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProjectUC:  usecase.NewProjectUseCase(projects, usecase.NewProjectAccess(projects), nil),
		CategoryUC: usecase.NewCategoryUseCase(memrepo.NewCategories(), nil),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, userID, role, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	return e.Code
}

func TestRouter_ProjectLifecycle(t *testing.T) {
	app := newRoutedApp()

	resp, data := call(t, app, http.MethodPost, "/api/projects", "u1", "user", `{"name":"Sprinter 2018","budget":"15000"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var p dto.ProjectResponse
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "u1", p.OwnerID)
	assert.Equal(t, "Sprinter 2018", p.Name)

	resp, _ = call(t, app, http.MethodGet, "/api/projects/"+p.ID, "u1", "user", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = call(t, app, http.MethodGet, "/api/projects/"+p.ID, "u2", "user", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, data))

	resp, _ = call(t, app, http.MethodGet, "/api/projects/"+p.ID, "admin1", "admin", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/projects/"+p.ID, "u1", "user", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = call(t, app, http.MethodGet, "/api/projects/"+p.ID, "u1", "user", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, data))
}

func TestRouter_BodyErrors(t *testing.T) {
	app := newRoutedApp()

	resp, data := call(t, app, http.MethodPost, "/api/projects", "u1", "user", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, data))

	resp, data = call(t, app, http.MethodPost, "/api/projects", "u1", "user", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, data))
}

func TestRouter_AccessRules(t *testing.T) {
	app := newRoutedApp()

	resp, _ := call(t, app, http.MethodGet, "/api/projects", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, data := call(t, app, http.MethodGet, "/api/categories", "", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(data))

	resp, _ = call(t, app, http.MethodPost, "/api/admin/categories", "u1", "user", `{"name":"Isolation"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data = call(t, app, http.MethodPost, "/api/admin/categories", "admin1", "admin", `{"name":"Isolation"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
}
