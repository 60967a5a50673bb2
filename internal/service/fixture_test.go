package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"issue-hub/internal/dto"
	"issue-hub/internal/model"
	"issue-hub/pkg/constants"
)

type fixture struct {
	users    *fakeUserRepo
	projects *fakeProjectRepo
	issues   *fakeIssueRepo

	projectSvc ProjectService
	issueSvc   IssueService
	userSvc    UserService
}

func newFixture() *fixture {
	f := &fixture{
		users:    newFakeUserRepo(),
		projects: newFakeProjectRepo(),
		issues:   newFakeIssueRepo(),
	}
	resolver := NewRelationResolver(f.users)
	log := zap.NewNop()

	f.projectSvc = NewProjectService(f.projects, f.users, resolver, log)
	f.issueSvc = NewIssueService(f.issues, f.projects, f.users, resolver, log)
	f.userSvc = NewUserService(f.users, log)
	return f
}

// user 创建用户并返回其调用者身份
func (f *fixture) user(t *testing.T, email string) *dto.UserInfo {
	t.Helper()
	u := &model.User{FirstName: "First", LastName: "Last", Email: email, AuthType: constants.AuthTypeLocal}
	require.NoError(t, f.users.Create(u))
	return dto.ToUserInfo(u)
}

// project 以 host 身份创建项目并依次添加成员
func (f *fixture) project(t *testing.T, title string, host *dto.UserInfo, members ...*dto.UserInfo) *dto.ProjectResponse {
	t.Helper()
	p, err := f.projectSvc.Create(&dto.CreateProjectRequest{Title: title}, host)
	require.NoError(t, err)
	for _, m := range members {
		p, err = f.projectSvc.AddMember(p.ID, m.ID, host)
		require.NoError(t, err)
	}
	return p
}

func (f *fixture) issue(t *testing.T, projectID, title string, caller *dto.UserInfo) *dto.IssueResponse {
	t.Helper()
	i, err := f.issueSvc.Create(&dto.CreateIssueRequest{
		ProjectID: projectID,
		Title:     title,
		Priority:  model.IssuePriorityMedium,
	}, caller)
	require.NoError(t, err)
	return i
}

func userIDs(users []*dto.UserResponse) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func strPtr(s string) *string {
	return &s
}
