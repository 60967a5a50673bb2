package service

import (
	"github.com/samber/lo"

	"issue-hub/internal/dto"
	"issue-hub/internal/model"
	"issue-hub/internal/repository"
)

// RelationResolver 把存储的用户/项目ID解析为嵌入视图
// 已不存在的ID直接跳过
type RelationResolver interface {
	Project(project *model.Project) (*dto.ProjectResponse, error)
	Projects(projects []*model.Project) ([]*dto.ProjectResponse, error)
	Issue(issue *model.Issue, project *model.Project) (*dto.IssueResponse, error)
	Issues(issues []*model.Issue, project *model.Project) ([]*dto.IssueResponse, error)
}

type relationResolver struct {
	userRepo repository.UserRepository
}

func NewRelationResolver(userRepo repository.UserRepository) RelationResolver {
	return &relationResolver{userRepo: userRepo}
}

func (r *relationResolver) Project(project *model.Project) (*dto.ProjectResponse, error) {
	views, err := r.Projects([]*model.Project{project})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *relationResolver) Projects(projects []*model.Project) ([]*dto.ProjectResponse, error) {
	ids := make([]string, 0)
	for _, p := range projects {
		ids = append(ids, p.HostID)
		ids = append(ids, p.Members...)
	}

	users, err := r.loadUsers(ids)
	if err != nil {
		return nil, err
	}

	return lo.Map(projects, func(p *model.Project, _ int) *dto.ProjectResponse {
		return toProjectResponse(p, users)
	}), nil
}

func (r *relationResolver) Issue(issue *model.Issue, project *model.Project) (*dto.IssueResponse, error) {
	views, err := r.Issues([]*model.Issue{issue}, project)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Issues 同一项目下的问题，一次批量查询解析全部用户
func (r *relationResolver) Issues(issues []*model.Issue, project *model.Project) ([]*dto.IssueResponse, error) {
	ids := append([]string{project.HostID}, project.Members...)
	for _, i := range issues {
		ids = append(ids, i.ReporterID)
		ids = append(ids, i.Assignees...)
	}

	users, err := r.loadUsers(ids)
	if err != nil {
		return nil, err
	}

	projectView := toProjectResponse(project, users)
	return lo.Map(issues, func(i *model.Issue, _ int) *dto.IssueResponse {
		return &dto.IssueResponse{
			ID:          i.ID,
			Title:       i.Title,
			Description: i.Description,
			Status:      i.Status,
			Priority:    i.Priority,
			Reporter:    dto.NewUserResponse(users[i.ReporterID]),
			Assignees:   pickUsers(i.Assignees, users),
			Project:     projectView,
			CreatedAt:   i.CreatedAt,
			UpdatedAt:   i.UpdatedAt,
		}
	}), nil
}

func (r *relationResolver) loadUsers(ids []string) (map[string]*model.User, error) {
	users, err := r.userRepo.FindByIDs(lo.Uniq(lo.Compact(ids)))
	if err != nil {
		return nil, err
	}
	return lo.KeyBy(users, func(u *model.User) string { return u.ID }), nil
}

func toProjectResponse(p *model.Project, users map[string]*model.User) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Host:        dto.NewUserResponse(users[p.HostID]),
		Members:     pickUsers(p.Members, users),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// pickUsers 按ID顺序取出用户，缺失的跳过
func pickUsers(ids []string, users map[string]*model.User) []*dto.UserResponse {
	return lo.FilterMap(ids, func(id string, _ int) (*dto.UserResponse, bool) {
		u, ok := users[id]
		if !ok {
			return nil, false
		}
		return dto.NewUserResponse(u), true
	})
}
