package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeRoundTrip(t *testing.T) {
	err := New(CodeNotFound, "offer not found")

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeInvalidInput))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, "offer not found", MessageOf(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUpstream, "storage unavailable")

	assert.True(t, Is(err, CodeUpstream))
	assert.ErrorIs(t, err, cause)
	// The caller-safe message must not contain the cause.
	assert.Equal(t, "storage unavailable", MessageOf(err))
	// The full error string keeps it for server-side logs.
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestIsSurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("submit: %w", New(CodeConflict, "offer already redeemed"))
	assert.True(t, Is(err, CodeConflict))
}

func TestForeignErrorDefaults(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
	assert.False(t, Is(err, CodeNotFound))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeInvalidInput))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(CodeConflict))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeUpstream))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("unknown")))
}
