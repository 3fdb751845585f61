package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestLoadDBWithoutPoolAnswersError(t *testing.T) {
	// No db.Init has run, so no connection can be checked out. The request
	// must be answered with an application error, not reach the handler.
	handlerCalled := false
	h := LoadDB(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/partners", nil)
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, req)
	})

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "result").Int())
	assert.NotEmpty(t, gjson.Get(rec.Body.String(), "error").String())
}
