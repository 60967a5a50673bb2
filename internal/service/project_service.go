package service

import (
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"issue-hub/internal/dto"
	"issue-hub/internal/model"
	"issue-hub/internal/pkg/auth"
	"issue-hub/internal/repository"
	pkgErrors "issue-hub/pkg/errors"
)

// ProjectService 项目操作
// 每个操作的顺序固定：校验参数 → 登录校验 → 查询 → 存在性 → 授权 → 业务校验 → 写入 → 返回解析后的视图
type ProjectService interface {
	ListMine(caller *dto.UserInfo) ([]*dto.ProjectResponse, error)
	Get(id string, caller *dto.UserInfo) (*dto.ProjectResponse, error)
	Search(keyword string, caller *dto.UserInfo) ([]*dto.ProjectResponse, error)
	Create(req *dto.CreateProjectRequest, caller *dto.UserInfo) (*dto.ProjectResponse, error)
	Update(id string, update dto.ProjectUpdate, caller *dto.UserInfo) (*dto.ProjectResponse, error)
	Delete(id string, caller *dto.UserInfo) (bool, error)
	AddMember(projectID, userID string, caller *dto.UserInfo) (*dto.ProjectResponse, error)
	RemoveMember(projectID, userID string, caller *dto.UserInfo) (*dto.ProjectResponse, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	resolver    RelationResolver
	log         *zap.Logger
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	resolver RelationResolver,
	log *zap.Logger,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		log:         log.Named("project"),
	}
}

func (s *projectService) ListMine(caller *dto.UserInfo) ([]*dto.ProjectResponse, error) {
	projects, err := s.accessible(caller)
	if err != nil {
		return nil, err
	}
	return s.views(projects)
}

func (s *projectService) Get(id string, caller *dto.UserInfo) (*dto.ProjectResponse, error) {
	if !model.IsValidID(id) {
		return nil, pkgErrors.ErrInvalidID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	project, err := s.load(id, caller, auth.PermProjectView)
	if err != nil {
		return nil, err
	}
	return s.view(project)
}

// Search 在可访问的项目中按标题或描述做不区分大小写的子串匹配
func (s *projectService) Search(keyword string, caller *dto.UserInfo) ([]*dto.ProjectResponse, error) {
	projects, err := s.accessible(caller)
	if err != nil {
		return nil, err
	}

	if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword != "" {
		projects = lo.Filter(projects, func(p *model.Project, _ int) bool {
			return strings.Contains(strings.ToLower(p.Title), keyword) ||
				strings.Contains(strings.ToLower(p.Description), keyword)
		})
	}
	return s.views(projects)
}

func (s *projectService) Create(req *dto.CreateProjectRequest, caller *dto.UserInfo) (*dto.ProjectResponse, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errProjectTitleEmpty
	}

	project := &model.Project{
		Title:       title,
		Description: strings.TrimSpace(lo.FromPtr(req.Description)),
		HostID:      caller.ID,
		Members:     []string{},
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, internalErr(s.log, err)
	}

	s.log.Info("project created", zap.String("project_id", project.ID), zap.String("host_id", caller.ID))
	return s.view(project)
}

// Update 只修改请求中出现的字段，description 允许显式置空
func (s *projectService) Update(id string, update dto.ProjectUpdate, caller *dto.UserInfo) (*dto.ProjectResponse, error) {
	if !model.IsValidID(id) {
		return nil, pkgErrors.ErrInvalidID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	project, err := s.load(id, caller, auth.PermProjectUpdate)
	if err != nil {
		return nil, err
	}

	if title, ok := update.Title.Get(); ok {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, errProjectTitleEmpty
		}
		project.Title = title
	}
	if description, ok := update.Description.Get(); ok {
		project.Description = strings.TrimSpace(description)
	}

	if update.Title.Set || update.Description.Set {
		if err := s.projectRepo.Save(project); err != nil {
			return nil, internalErr(s.log, err)
		}
	}
	return s.view(project)
}

// Delete 不级联删除问题，返回是否真的删除了一行
func (s *projectService) Delete(id string, caller *dto.UserInfo) (bool, error) {
	if !model.IsValidID(id) {
		return false, pkgErrors.ErrInvalidID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return false, err
	}

	if _, err := s.load(id, caller, auth.PermProjectDelete); err != nil {
		return false, err
	}

	deleted, err := s.projectRepo.Delete(id)
	if err != nil {
		return false, internalErr(s.log, err)
	}

	s.log.Info("project deleted", zap.String("project_id", id), zap.Bool("deleted", deleted))
	return deleted, nil
}

// AddMember 读取-修改-整行写回，并发添加时后写覆盖先写
func (s *projectService) AddMember(projectID, userID string, caller *dto.UserInfo) (*dto.ProjectResponse, error) {
	project, err := s.memberTarget(projectID, userID, caller)
	if err != nil {
		return nil, err
	}

	if project.HasMember(userID) {
		return nil, errAlreadyMember
	}

	project.Members = append(project.Members, userID)
	if err := s.projectRepo.Save(project); err != nil {
		return nil, internalErr(s.log, err)
	}
	return s.view(project)
}

// RemoveMember 已指派给该成员的问题不做清理
func (s *projectService) RemoveMember(projectID, userID string, caller *dto.UserInfo) (*dto.ProjectResponse, error) {
	project, err := s.memberTarget(projectID, userID, caller)
	if err != nil {
		return nil, err
	}

	if !project.HasMember(userID) {
		return nil, errNotMember
	}

	project.Members = lo.Without(project.Members, userID)
	if err := s.projectRepo.Save(project); err != nil {
		return nil, internalErr(s.log, err)
	}
	return s.view(project)
}

// memberTarget 成员管理的公共前置检查：仅 host，目标用户必须存在
func (s *projectService) memberTarget(projectID, userID string, caller *dto.UserInfo) (*model.Project, error) {
	if !model.IsValidID(projectID) {
		return nil, pkgErrors.ErrInvalidID
	}
	if !model.IsValidID(userID) {
		return nil, pkgErrors.ErrInvalidUserID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	project, err := s.load(projectID, caller, auth.PermProjectMemberManage)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, storeErr(s.log, err, pkgErrors.ErrUserNotFound)
	}
	return project, nil
}

// load 查询项目并校验权限
func (s *projectService) load(id string, caller *dto.UserInfo, perm auth.Permission) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(s.log, err, pkgErrors.ErrProjectNotFound)
	}
	if !auth.Can(project, caller.ID, perm) {
		return nil, errProjectForbidden
	}
	return project, nil
}

func (s *projectService) accessible(caller *dto.UserInfo) ([]*model.Project, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListAccessible(caller.ID, repository.WithOrder("created_at DESC"))
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	return projects, nil
}

func (s *projectService) view(project *model.Project) (*dto.ProjectResponse, error) {
	resp, err := s.resolver.Project(project)
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	return resp, nil
}

func (s *projectService) views(projects []*model.Project) ([]*dto.ProjectResponse, error) {
	resp, err := s.resolver.Projects(projects)
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	return resp, nil
}
