package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"issue-hub/internal/model"
	"issue-hub/internal/repository"
	pkgErrors "issue-hub/pkg/errors"
)

// 内存仓储，返回副本以模拟持久化；err 非空时所有方法返回该错误

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return pkgErrors.ErrRecordExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByIDs(ids []string) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pkgErrors.ErrRecordNotFound
}

func (r *fakeUserRepo) Search(keyword string, _ ...repository.QueryOption) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	keyword = strings.ToLower(keyword)
	out := make([]*model.User, 0)
	for _, u := range r.users {
		if strings.Contains(u.Email, keyword) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*model.Project
	saves    int
	err      error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*model.Project{}}
}

func copyProject(p *model.Project) *model.Project {
	cp := *p
	cp.Members = append([]string{}, p.Members...)
	return &cp
}

func (r *fakeProjectRepo) Create(project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	r.projects[project.ID] = copyProject(project)
	return nil
}

func (r *fakeProjectRepo) FindByID(id string) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.projects[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return copyProject(p), nil
}

func (r *fakeProjectRepo) ListAccessible(userID string, _ ...repository.QueryOption) ([]*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.Project, 0)
	for _, p := range r.projects {
		if p.HostID == userID || lo.Contains(p.Members, userID) {
			out = append(out, copyProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeProjectRepo) Save(project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves++
	if _, ok := r.projects[project.ID]; ok {
		r.projects[project.ID] = copyProject(project)
	}
	return nil
}

func (r *fakeProjectRepo) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.projects[id]
	delete(r.projects, id)
	return ok, nil
}

type fakeIssueRepo struct {
	mu     sync.Mutex
	issues map[string]*model.Issue
	saves  int
	err    error
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: map[string]*model.Issue{}}
}

func copyIssue(i *model.Issue) *model.Issue {
	cp := *i
	cp.Assignees = append([]string{}, i.Assignees...)
	return &cp
}

func (r *fakeIssueRepo) Create(issue *model.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	issue.CreatedAt = time.Now()
	issue.UpdatedAt = issue.CreatedAt
	r.issues[issue.ID] = copyIssue(issue)
	return nil
}

func (r *fakeIssueRepo) FindByID(id string) (*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	i, ok := r.issues[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return copyIssue(i), nil
}

func (r *fakeIssueRepo) ListByProject(projectID string, _ ...repository.QueryOption) ([]*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.Issue, 0)
	for _, i := range r.issues {
		if i.ProjectID == projectID {
			out = append(out, copyIssue(i))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Title < out[b].Title })
	return out, nil
}

func (r *fakeIssueRepo) Save(issue *model.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves++
	if _, ok := r.issues[issue.ID]; ok {
		r.issues[issue.ID] = copyIssue(issue)
	}
	return nil
}

func (r *fakeIssueRepo) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.issues[id]
	delete(r.issues, id)
	return ok, nil
}

// 编译期检查
var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.ProjectRepository = (*fakeProjectRepo)(nil)
	_ repository.IssueRepository   = (*fakeIssueRepo)(nil)
)
