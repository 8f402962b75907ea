package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusForbidden, "asset quota exceeded", map[string]interface{}{
		"resource": "asset",
		"max":      5,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Forbidden", body["title"])
	assert.Equal(t, float64(403), body["status"])
	assert.Equal(t, "asset quota exceeded", body["detail"])
	assert.Equal(t, "asset", body["resource"])
	assert.Equal(t, float64(5), body["max"])
	assert.NotContains(t, body, "instance")
}

func TestRespondError_UnknownStatusType(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusTeapot, "")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "about:blank", body["type"])
	assert.NotContains(t, body, "detail")
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, []int{1, 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[1,2]`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]interface{}{"bad": func() {}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
