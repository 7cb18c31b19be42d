package response_test

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identity/core/response"
)

func TestJSON(t *testing.T) {
	t.Run("encodes body with content type", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := response.JSON(map[string]string{"status": "ok"})(w, r)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("no body for 204", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := response.JSONWithStatus(map[string]string{"x": "y"}, http.StatusNoContent)(w, r)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	err := response.Redirect("http://localhost:8081/callback?code=abc")(w, r)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:8081/callback?code=abc", w.Header().Get("Location"))
}

func TestJSONErrorHandler(t *testing.T) {
	t.Run("http error keeps status and code", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		response.JSONErrorHandler(w, r, response.ErrUnauthorized.WithMessage("token expired"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
		assert.Contains(t, w.Body.String(), "token expired")
	})

	t.Run("plain error becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		response.JSONErrorHandler(w, r, errors.New("pg down"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"internal_server_error"`)
	})

	t.Run("wrapped http error unwraps", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		wrapped := fmt.Errorf("lookup user: %w", response.ErrNotFound)
		response.JSONErrorHandler(w, r, wrapped)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTemplate(t *testing.T) {
	tpl := template.Must(template.New("consent").Parse(
		`<p>{{.ClientID}} wants access</p>`,
	))

	t.Run("renders data", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := response.Template(tpl, "consent", map[string]string{"ClientID": "demo-client"})(w, r)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "demo-client wants access")
	})

	t.Run("missing template returns error without body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := response.Template(tpl, "nope", nil)(w, r)
		require.Error(t, err)
		assert.Empty(t, w.Body.String())
	})
}
