package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-hub/internal/dto"
	pkgErrors "issue-hub/pkg/errors"
)

func TestProjectService_Get(t *testing.T) {
	f := newFixture()
	host := f.user(t, "host@example.com")
	member := f.user(t, "member@example.com")
	stranger := f.user(t, "stranger@example.com")
	p := f.project(t, "Alpha", host, member)

	tests := []struct {
		name    string
		caller  *dto.UserInfo
		wantErr error
	}{
		{name: "host", caller: host},
		{name: "member", caller: member},
		{name: "stranger", caller: stranger, wantErr: pkgErrors.ErrForbidden},
		{name: "anonymous", caller: nil, wantErr: pkgErrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.projectSvc.Get(p.ID, tt.caller)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.ID, got.ID)
			assert.Equal(t, host.ID, got.Host.ID)
			assert.Equal(t, []string{member.ID}, userIDs(got.Members))
		})
	}

	t.Run("malformed id", func(t *testing.T) {
		_, err := f.projectSvc.Get("not-an-id", host)
		assert.True(t, errors.Is(err, pkgErrors.ErrInvalidID))
	})

	t.Run("malformed id checked before authentication", func(t *testing.T) {
		_, err := f.projectSvc.Get("not-an-id", nil)
		assert.True(t, errors.Is(err, pkgErrors.ErrInvalidID))
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := f.projectSvc.Get(uuid.NewString(), host)
		assert.Equal(t, pkgErrors.ErrProjectNotFound, err)
	})
}

func TestProjectService_CreateRoundTrip(t *testing.T) {
	f := newFixture()
	creator := f.user(t, "creator@example.com")

	created, err := f.projectSvc.Create(&dto.CreateProjectRequest{Title: " Foo ", Description: nil}, creator)
	require.NoError(t, err)

	got, err := f.projectSvc.Get(created.ID, creator)
	require.NoError(t, err)
	assert.Equal(t, "Foo", got.Title)
	assert.Equal(t, "", got.Description)
	assert.NotNil(t, got.Members)
	assert.Empty(t, got.Members)
	assert.Equal(t, creator.ID, got.Host.ID)
	assert.Equal(t, creator.Email, got.Host.Email)

	t.Run("description trimmed", func(t *testing.T) {
		p, err := f.projectSvc.Create(&dto.CreateProjectRequest{Title: "Bar", Description: strPtr("  notes ")}, creator)
		require.NoError(t, err)
		assert.Equal(t, "notes", p.Description)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := f.projectSvc.Create(&dto.CreateProjectRequest{Title: "   "}, creator)
		assert.True(t, errors.Is(err, pkgErrors.ErrBadRequest))
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.projectSvc.Create(&dto.CreateProjectRequest{Title: "Foo"}, nil)
		assert.True(t, errors.Is(err, pkgErrors.ErrUnauthorized))
	})
}

func TestProjectService_ListAndSearch(t *testing.T) {
	f := newFixture()
	a := f.user(t, "a@example.com")
	b := f.user(t, "b@example.com")

	f.project(t, "Payments", a)
	p2, err := f.projectSvc.Create(&dto.CreateProjectRequest{Title: "Website", Description: strPtr("Marketing PAYMENT page")}, b)
	require.NoError(t, err)
	_, err = f.projectSvc.AddMember(p2.ID, a.ID, b)
	require.NoError(t, err)
	f.project(t, "Private", b)

	mine, err := f.projectSvc.ListMine(a)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	tests := []struct {
		keyword string
		want    int
	}{
		{keyword: "", want: 2},
		{keyword: "   ", want: 2},
		{keyword: "payment", want: 2},
		{keyword: "WEB", want: 1},
		{keyword: "private", want: 0},
	}
	for _, tt := range tests {
		t.Run("keyword="+tt.keyword, func(t *testing.T) {
			got, err := f.projectSvc.Search(tt.keyword, a)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	_, err = f.projectSvc.ListMine(nil)
	assert.True(t, errors.Is(err, pkgErrors.ErrUnauthorized))
}

func TestProjectService_AddMember(t *testing.T) {
	f := newFixture()
	host := f.user(t, "host@example.com")
	b := f.user(t, "b@example.com")
	p := f.project(t, "Alpha", host)

	got, err := f.projectSvc.AddMember(p.ID, b.ID, host)
	require.NoError(t, err)
	assert.Len(t, got.Members, 1)

	_, err = f.projectSvc.AddMember(p.ID, b.ID, host)
	assert.True(t, errors.Is(err, pkgErrors.ErrConflict))

	stored, err := f.projects.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, []string(stored.Members))

	t.Run("member cannot manage membership", func(t *testing.T) {
		c := f.user(t, "c@example.com")
		_, err := f.projectSvc.AddMember(p.ID, c.ID, b)
		assert.True(t, errors.Is(err, pkgErrors.ErrForbidden))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.projectSvc.AddMember(p.ID, uuid.NewString(), host)
		assert.Equal(t, pkgErrors.ErrUserNotFound, err)
	})

	t.Run("malformed user id", func(t *testing.T) {
		_, err := f.projectSvc.AddMember(p.ID, "bogus", host)
		assert.Equal(t, pkgErrors.ErrInvalidUserID, err)
	})

	t.Run("forbidden before target lookup", func(t *testing.T) {
		stranger := f.user(t, "stranger@example.com")
		_, err := f.projectSvc.AddMember(p.ID, uuid.NewString(), stranger)
		assert.True(t, errors.Is(err, pkgErrors.ErrForbidden))
	})
}

func TestProjectService_RemoveMember(t *testing.T) {
	f := newFixture()
	host := f.user(t, "host@example.com")
	b := f.user(t, "b@example.com")
	c := f.user(t, "c@example.com")
	p := f.project(t, "Alpha", host, b)

	_, err := f.projectSvc.RemoveMember(p.ID, c.ID, host)
	assert.True(t, errors.Is(err, pkgErrors.ErrConflict))

	got, err := f.projectSvc.RemoveMember(p.ID, b.ID, host)
	require.NoError(t, err)
	assert.Empty(t, got.Members)

	_, err = f.projectSvc.Get(p.ID, b)
	assert.True(t, errors.Is(err, pkgErrors.ErrForbidden))
}

func TestProjectService_Update(t *testing.T) {
	f := newFixture()
	host := f.user(t, "host@example.com")
	member := f.user(t, "member@example.com")
	p, err := f.projectSvc.Create(&dto.CreateProjectRequest{Title: "Alpha", Description: strPtr("first")}, host)
	require.NoError(t, err)
	_, err = f.projectSvc.AddMember(p.ID, member.ID, host)
	require.NoError(t, err)

	t.Run("title only keeps description", func(t *testing.T) {
		got, err := f.projectSvc.Update(p.ID, dto.ProjectUpdate{Title: dto.Some("  Beta ")}, host)
		require.NoError(t, err)
		assert.Equal(t, "Beta", got.Title)
		assert.Equal(t, "first", got.Description)
	})

	t.Run("explicit empty description clears it", func(t *testing.T) {
		got, err := f.projectSvc.Update(p.ID, dto.ProjectUpdate{Description: dto.Some("")}, host)
		require.NoError(t, err)
		assert.Equal(t, "Beta", got.Title)
		assert.Equal(t, "", got.Description)
	})

	t.Run("blank title rejected and nothing written", func(t *testing.T) {
		saves := f.projects.saves
		_, err := f.projectSvc.Update(p.ID, dto.ProjectUpdate{Title: dto.Some("  "), Description: dto.Some("x")}, host)
		assert.True(t, errors.Is(err, pkgErrors.ErrBadRequest))
		assert.Equal(t, saves, f.projects.saves)

		stored, err := f.projects.FindByID(p.ID)
		require.NoError(t, err)
		assert.Equal(t, "", stored.Description)
	})

	t.Run("no fields is not a write", func(t *testing.T) {
		saves := f.projects.saves
		got, err := f.projectSvc.Update(p.ID, dto.ProjectUpdate{}, host)
		require.NoError(t, err)
		assert.Equal(t, "Beta", got.Title)
		assert.Equal(t, saves, f.projects.saves)
	})

	t.Run("member cannot update", func(t *testing.T) {
		_, err := f.projectSvc.Update(p.ID, dto.ProjectUpdate{Title: dto.Some("Gamma")}, member)
		assert.True(t, errors.Is(err, pkgErrors.ErrForbidden))
	})
}

func TestProjectService_Delete(t *testing.T) {
	f := newFixture()
	a := f.user(t, "a@example.com")
	b := f.user(t, "b@example.com")
	p1 := f.project(t, "P1", a)

	deleted, err := f.projectSvc.Delete(p1.ID, b)
	assert.True(t, errors.Is(err, pkgErrors.ErrForbidden))
	assert.False(t, deleted)

	_, err = f.projectSvc.Get(p1.ID, a)
	require.NoError(t, err)

	deleted, err = f.projectSvc.Delete(p1.ID, a)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.projectSvc.Get(p1.ID, a)
	assert.Equal(t, pkgErrors.ErrProjectNotFound, err)
}

func TestProjectService_StoreFailure(t *testing.T) {
	f := newFixture()
	host := f.user(t, "host@example.com")
	p := f.project(t, "Alpha", host)

	f.projects.err = pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", errors.New("connection refused"))

	_, err := f.projectSvc.Get(p.ID, host)
	require.Error(t, err)
	assert.Equal(t, pkgErrors.ErrInternalError, err)
	assert.NotContains(t, err.Error(), "connection refused")
}
