package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("domain error passes through wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), NewDuplicateAccount(nil))
		de := ToDomainError(wrapped)
		require.NotNil(t, de)
		assert.Equal(t, CodeDuplicateAccount, de.Code)
		assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	})

	t.Run("fiber error keeps status", func(t *testing.T) {
		de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
		assert.Equal(t, CodeNotFound, de.Code)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
		assert.Equal(t, "Cannot GET /nope", de.Message)
	})

	t.Run("unknown error hides detail", func(t *testing.T) {
		de := ToDomainError(errors.New("pq: relation accounts does not exist"))
		assert.Equal(t, CodeInternal, de.Code)
		assert.Equal(t, "internal server error", de.Message)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	})
}

func TestStoreUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewStoreUnavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeStoreUnavailable, CodeOf(err))
	assert.Equal(t, http.StatusServiceUnavailable, ToDomainError(err).HTTPStatus)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInvalidCredentials, CodeOf(NewInvalidCredentials()))
	assert.Equal(t, CodeMissingFields, CodeOf(NewMissingFields([]string{"email"})))
	assert.Empty(t, CodeOf(errors.New("plain")))
	assert.Empty(t, CodeOf(nil))
}

func TestMissingFieldsDetails(t *testing.T) {
	de := ToDomainError(NewMissingFields([]string{"email", "password"}))
	assert.Equal(t, []string{"email", "password"}, de.Details["fields"])

	assert.Nil(t, ToDomainError(NewMissingFields(nil)).Details)
}
