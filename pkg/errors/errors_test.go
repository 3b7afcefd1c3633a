package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("cart", "sess-1")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "sess-1")
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("cart is empty")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", ServiceUnavailable("kafka down"), http.StatusServiceUnavailable},
		{"wrapped app error", fmt.Errorf("outer: %w", NotFound("cart", "x")), http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("outer: %w", ErrInvalidInput), http.StatusBadRequest},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(NotFound("product", "p1"), "load product")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "load product")
}
