package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorIs(t *testing.T) {
	t.Run("matches by code", func(t *testing.T) {
		err := New(CodeForbidden, "Not authorized to access this project")
		assert.True(t, stderrors.Is(err, ErrForbidden))
		assert.False(t, stderrors.Is(err, ErrNotFound))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", ErrProjectNotFound)
		assert.True(t, stderrors.Is(err, ErrRecordNotFound))
	})

	t.Run("invalid id kinds share a code", func(t *testing.T) {
		assert.True(t, stderrors.Is(ErrInvalidUserID, ErrInvalidID))
		assert.False(t, stderrors.Is(ErrInvalidID, ErrBadRequest))
	})
}

func TestAppErrorPublic(t *testing.T) {
	assert.True(t, ErrConflict.Public())
	assert.True(t, ErrInvalidCredentials.Public())
	assert.False(t, ErrInternalError.Public())
	assert.False(t, Wrap(CodeDatabaseError, "query failed", stderrors.New("timeout")).Public())
}

func TestAppErrorMessage(t *testing.T) {
	err := Wrap(CodeDatabaseError, "query failed", stderrors.New("timeout"))
	assert.Equal(t, "[501] query failed: timeout", err.Error())
	assert.Equal(t, "[404] Issue not found", ErrIssueNotFound.Error())
	assert.EqualError(t, stderrors.Unwrap(err), "timeout")
}
