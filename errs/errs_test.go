package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApiErrSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"validation", NewValidationError("name"), ErrValidation, http.StatusBadRequest},
		{"duplicate key", NewDuplicateKeyError("category", "python"), ErrDuplicateKey, http.StatusConflict},
		{"not found", NewNotFoundError("category"), ErrNotFound, http.StatusNotFound},
		{"storage", NewStorageError("find categories", errors.New("disk gone")), ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"unauthorized", NewUnauthorizedError("admin login required"), ErrUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))

			var apiErr *ApiErr
			require.True(t, errors.As(tt.err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("name")
	assert.Equal(t, "name", err.Field)
	assert.True(t, IsValidation(err))
}

func TestGetFullErrorIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("toggle category", cause)

	full := err.GetFullError()
	assert.Contains(t, full, "storage unavailable")
	assert.Contains(t, full, "connection refused")
}

func TestFromStore(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, FromStore("find", nil))
	})

	t.Run("ApiErr passes through unchanged", func(t *testing.T) {
		orig := NewDuplicateKeyError("category", "python")
		assert.Same(t, orig, FromStore("add category", orig).(*ApiErr))
	})

	t.Run("gorm not found maps to NotFound", func(t *testing.T) {
		err := FromStore("find category", gorm.ErrRecordNotFound)
		assert.True(t, IsNotFound(err))
	})

	t.Run("unique violation maps to DuplicateKey", func(t *testing.T) {
		err := FromStore("add category", errors.New("UNIQUE constraint failed: categories.id"))
		assert.True(t, IsDuplicateKey(err))
	})

	t.Run("anything else maps to StorageUnavailable", func(t *testing.T) {
		err := FromStore("find projects", errors.New("database is locked"))
		assert.True(t, IsStorageUnavailable(err))
	})
}
