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

// IssueService 问题操作，权限通过问题所属项目判断
type IssueService interface {
	List(projectID string, caller *dto.UserInfo) ([]*dto.IssueResponse, error)
	Get(id string, caller *dto.UserInfo) (*dto.IssueResponse, error)
	Create(req *dto.CreateIssueRequest, caller *dto.UserInfo) (*dto.IssueResponse, error)
	Update(id string, update dto.IssueUpdate, caller *dto.UserInfo) (*dto.IssueResponse, error)
	Delete(id string, caller *dto.UserInfo) (bool, error)
	AssignUsers(issueID string, userIDs []string, caller *dto.UserInfo) (*dto.IssueResponse, error)
	RemoveAssignee(issueID, userID string, caller *dto.UserInfo) (*dto.IssueResponse, error)
}

type issueService struct {
	issueRepo   repository.IssueRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	resolver    RelationResolver
	log         *zap.Logger
}

func NewIssueService(
	issueRepo repository.IssueRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	resolver RelationResolver,
	log *zap.Logger,
) IssueService {
	return &issueService{
		issueRepo:   issueRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		log:         log.Named("issue"),
	}
}

func (s *issueService) List(projectID string, caller *dto.UserInfo) ([]*dto.IssueResponse, error) {
	if !model.IsValidID(projectID) {
		return nil, pkgErrors.ErrInvalidID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	project, err := s.loadProject(projectID, caller, auth.PermIssueView, errIssuesForbidden)
	if err != nil {
		return nil, err
	}

	issues, err := s.issueRepo.ListByProject(project.ID, repository.WithOrder("created_at DESC"))
	if err != nil {
		return nil, internalErr(s.log, err)
	}

	resp, err := s.resolver.Issues(issues, project)
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	return resp, nil
}

func (s *issueService) Get(id string, caller *dto.UserInfo) (*dto.IssueResponse, error) {
	if !model.IsValidID(id) {
		return nil, pkgErrors.ErrInvalidID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	issue, project, err := s.load(id, caller, auth.PermIssueView, errIssueForbidden)
	if err != nil {
		return nil, err
	}
	return s.view(issue, project)
}

func (s *issueService) Create(req *dto.CreateIssueRequest, caller *dto.UserInfo) (*dto.IssueResponse, error) {
	if !model.IsValidID(req.ProjectID) {
		return nil, pkgErrors.ErrInvalidID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	project, err := s.loadProject(req.ProjectID, caller, auth.PermIssueCreate, errCreateIssueDenied)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errIssueTitleEmpty
	}
	if !req.Priority.Valid() {
		return nil, errInvalidPriority
	}

	issue := &model.Issue{
		Title:       title,
		Description: strings.TrimSpace(lo.FromPtr(req.Description)),
		Status:      model.IssueStatusOpen,
		Priority:    req.Priority,
		ReporterID:  caller.ID,
		ProjectID:   project.ID,
		Assignees:   []string{},
	}
	if err := s.issueRepo.Create(issue); err != nil {
		return nil, internalErr(s.log, err)
	}

	s.log.Info("issue created",
		zap.String("issue_id", issue.ID),
		zap.String("project_id", project.ID),
		zap.String("reporter_id", caller.ID),
	)
	return s.view(issue, project)
}

// Update 四个字段都未出现时直接拒绝，不做空更新
func (s *issueService) Update(id string, update dto.IssueUpdate, caller *dto.UserInfo) (*dto.IssueResponse, error) {
	if !model.IsValidID(id) {
		return nil, pkgErrors.ErrInvalidID
	}
	if update.Empty() {
		return nil, errNoFieldsToUpdate
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	issue, project, err := s.load(id, caller, auth.PermIssueUpdate, errUpdateIssueDenied)
	if err != nil {
		return nil, err
	}

	if title, ok := update.Title.Get(); ok {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, errIssueTitleEmpty
		}
		issue.Title = title
	}
	if description, ok := update.Description.Get(); ok {
		issue.Description = strings.TrimSpace(description)
	}
	if status, ok := update.Status.Get(); ok {
		if !status.Valid() {
			return nil, errInvalidStatus
		}
		issue.Status = status
	}
	if priority, ok := update.Priority.Get(); ok {
		if !priority.Valid() {
			return nil, errInvalidPriority
		}
		issue.Priority = priority
	}

	if err := s.issueRepo.Save(issue); err != nil {
		return nil, internalErr(s.log, err)
	}
	return s.view(issue, project)
}

func (s *issueService) Delete(id string, caller *dto.UserInfo) (bool, error) {
	if !model.IsValidID(id) {
		return false, pkgErrors.ErrInvalidID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return false, err
	}

	if _, _, err := s.load(id, caller, auth.PermIssueDelete, errDeleteIssueDenied); err != nil {
		return false, err
	}

	deleted, err := s.issueRepo.Delete(id)
	if err != nil {
		return false, internalErr(s.log, err)
	}

	s.log.Info("issue deleted", zap.String("issue_id", id), zap.Bool("deleted", deleted))
	return deleted, nil
}

// AssignUsers 不是 host 或成员的候选人、已指派的候选人、不存在的用户都静默跳过
func (s *issueService) AssignUsers(issueID string, userIDs []string, caller *dto.UserInfo) (*dto.IssueResponse, error) {
	if !model.IsValidID(issueID) {
		return nil, pkgErrors.ErrInvalidID
	}
	for _, userID := range userIDs {
		if !model.IsValidID(userID) {
			return nil, pkgErrors.ErrInvalidUserID
		}
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	issue, project, err := s.load(issueID, caller, auth.PermIssueAssign, errAssignIssueDenied)
	if err != nil {
		return nil, err
	}

	candidates, err := s.userRepo.FindByIDs(lo.Uniq(userIDs))
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	found := lo.SliceToMap(candidates, func(u *model.User) (string, struct{}) { return u.ID, struct{}{} })

	added := 0
	for _, userID := range lo.Uniq(userIDs) {
		if _, ok := found[userID]; !ok {
			continue
		}
		if !auth.HasProjectAccess(project, userID) || issue.IsAssigned(userID) {
			continue
		}
		issue.Assignees = append(issue.Assignees, userID)
		added++
	}

	if added > 0 {
		if err := s.issueRepo.Save(issue); err != nil {
			return nil, internalErr(s.log, err)
		}
	}
	return s.view(issue, project)
}

func (s *issueService) RemoveAssignee(issueID, userID string, caller *dto.UserInfo) (*dto.IssueResponse, error) {
	if !model.IsValidID(issueID) {
		return nil, pkgErrors.ErrInvalidID
	}
	if !model.IsValidID(userID) {
		return nil, pkgErrors.ErrInvalidUserID
	}
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	issue, project, err := s.load(issueID, caller, auth.PermIssueAssign, errIssueForbidden)
	if err != nil {
		return nil, err
	}

	if !issue.IsAssigned(userID) {
		return nil, pkgErrors.ErrNotAssignee
	}

	issue.Assignees = lo.Without(issue.Assignees, userID)
	if err := s.issueRepo.Save(issue); err != nil {
		return nil, internalErr(s.log, err)
	}
	return s.view(issue, project)
}

// load 查询问题及其项目并校验权限
// 项目已删除的问题返回 Project not found
func (s *issueService) load(id string, caller *dto.UserInfo, perm auth.Permission, denied error) (*model.Issue, *model.Project, error) {
	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		return nil, nil, storeErr(s.log, err, pkgErrors.ErrIssueNotFound)
	}

	project, err := s.loadProject(issue.ProjectID, caller, perm, denied)
	if err != nil {
		return nil, nil, err
	}
	return issue, project, nil
}

func (s *issueService) loadProject(id string, caller *dto.UserInfo, perm auth.Permission, denied error) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(s.log, err, pkgErrors.ErrProjectNotFound)
	}
	if !auth.Can(project, caller.ID, perm) {
		return nil, denied
	}
	return project, nil
}

func (s *issueService) view(issue *model.Issue, project *model.Project) (*dto.IssueResponse, error) {
	resp, err := s.resolver.Issue(issue, project)
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	return resp, nil
}
