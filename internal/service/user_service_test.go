package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-hub/internal/dto"
	pkgErrors "issue-hub/pkg/errors"
)

func TestUserService_Me(t *testing.T) {
	f := newFixture()
	ada := f.user(t, "ada@example.com")

	got, err := f.userSvc.Me(ada)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = f.userSvc.Me(nil)
	assert.True(t, errors.Is(err, pkgErrors.ErrUnauthorized))

	f.users.err = errors.New("disk on fire")
	_, err = f.userSvc.Me(ada)
	assert.Equal(t, pkgErrors.ErrInternalError, err)
}

func TestUserService_Search(t *testing.T) {
	f := newFixture()
	ada := f.user(t, "ada@example.com")
	f.user(t, "bob@example.com")

	got, err := f.userSvc.Search(&dto.UserSearchQuery{Keyword: "bob"}, ada)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob@example.com", got[0].Email)

	_, err = f.userSvc.Search(&dto.UserSearchQuery{}, nil)
	assert.True(t, errors.Is(err, pkgErrors.ErrUnauthorized))
}
