package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"conflict", NewConflictError("dup"), http.StatusBadRequest},
		{"self reference", NewSelfReferenceError("self"), http.StatusBadRequest},
		{"state", NewStateError("handled"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"not found", NewNotFoundError("Post", 7), http.StatusNotFound},
		{"timeout", NewTimeoutError(errors.New("deadline")), http.StatusGatewayTimeout},
		{"internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NewNotFoundError("User", "bob")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestRespondWithError_HidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return RespondWithError(c, http.StatusInternalServerError, NewInternalError(errors.New("pq: relation missing")))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return RespondWithError(c, http.StatusInternalServerError, errors.New("secret"))
	})

	for _, path := range []string{"/internal", "/plain"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Internal server error", body.Error)
		assert.Empty(t, body.Details)
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFoundError("Post", 42)
	assert.Equal(t, "Post 42 not found", err.Error())
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeConflict))
}
