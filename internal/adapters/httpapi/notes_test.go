package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesHandlers(t *testing.T) {
	p := newMockProvider()
	r := newTestRouter(p)

	w := doRequest(t, r, http.MethodPut, "/notes", `{"text":"water the plants"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "water the plants", p.notes)

	w = doRequest(t, r, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notes":"water the plants"}`, w.Body.String())

	w = doRequest(t, r, http.MethodPut, "/notes", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/notes", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, p.notes)
}
