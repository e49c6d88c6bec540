package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginMismatchError(t *testing.T) {
	err := NewOriginMismatchError("editar")

	assert.Equal(t, http.StatusForbidden, err.StatusCode)
	assert.Equal(t, CodeOriginMismatch, err.ErrorCode)
	assert.Contains(t, err.Message, "editar")
	assert.Contains(t, err.Message, "CrediExpress")
}

func TestPartialUnavailableErrorNamesSide(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPartialUnavailableError("applications", cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
	assert.Contains(t, err.Message, "applications")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestHasErrorCodeThroughWrapping(t *testing.T) {
	inner := NewStoreUnavailableError(errors.New("dial tcp: refused"))
	wrapped := fmt.Errorf("fetching snapshot: %w", inner)

	assert.True(t, HasErrorCode(wrapped, CodeStoreUnavailable))
	assert.False(t, HasErrorCode(wrapped, CodeOriginMismatch))
	assert.False(t, HasErrorCode(errors.New("plain"), CodeStoreUnavailable))
	assert.False(t, HasErrorCode(nil, CodeStoreUnavailable))
}
