package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUnavailable, "store unreachable", cause)

	assert.Equal(t, "store unreachable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	err := New(CodeNotFound, "country not found")
	wrapped := fmt.Errorf("query failed: %w", err)

	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeInternal))
	assert.False(t, Is(errors.New("plain"), CodeNotFound))
	assert.False(t, Is(nil, CodeNotFound))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeBadRequest))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusServiceUnavailable, ToHTTPStatus(CodeUnavailable))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("unknown")))
}

func TestWriteJSONEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, New(CodeNotFound, "country not found"))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not_found","message":"country not found"}`, rr.Body.String())
}

// TestWriteJSONCollapsesUnknownErrors verifies raw error text never reaches
// the client.
func TestWriteJSONCollapsesUnknownErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, errors.New("pq: relation does not exist"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal","message":"internal error"}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "pq:")
}

// TestWriteJSONHidesWrappedCause verifies only Message is serialized even when
// a cause is attached.
func TestWriteJSONHidesWrappedCause(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, Wrap(CodeInternal, "failed to list countries", errors.New("dial tcp: refused")))

	assert.JSONEq(t, `{"error":"internal","message":"failed to list countries"}`, rr.Body.String())
}
