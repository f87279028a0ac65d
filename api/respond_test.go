package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gniraula/portfolio-site-backend/errs"
)

func TestWriteErrorShape(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	t.Run("validation error carries the field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errs.NewValidationError("name"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body ErrorResponse
		decodeJSON(t, rec, &body)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "name", body.Field)
		assert.Empty(t, body.Cause)
	})

	t.Run("storage error carries the cause chain", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errs.NewStorageError("find categories", errors.New("disk gone")))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body ErrorResponse
		decodeJSON(t, rec, &body)
		assert.Contains(t, body.Cause, "disk gone")
	})

	t.Run("unexpected error becomes a generic 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errors.New("boom"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body ErrorResponse
		decodeJSON(t, rec, &body)
		assert.Equal(t, "Internal Server Error", body.Error)
		assert.NotContains(t, body.Details, "boom")
	})
}
