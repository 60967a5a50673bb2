package dto

import (
	"time"

	"issue-hub/internal/model"
)

// CreateIssueRequest 创建问题请求
type CreateIssueRequest struct {
	ProjectID   string              `json:"project_id"`
	Title       string              `json:"title" binding:"max=200"`
	Description *string             `json:"description"`
	Priority    model.IssuePriority `json:"priority"`
}

// IssueUpdate 问题部分更新字段
type IssueUpdate struct {
	Title       Optional[string]              `json:"title"`
	Description Optional[string]              `json:"description"`
	Status      Optional[model.IssueStatus]   `json:"status"`
	Priority    Optional[model.IssuePriority] `json:"priority"`
}

// Empty 四个字段都未出现
func (u IssueUpdate) Empty() bool {
	return !u.Title.Set && !u.Description.Set && !u.Status.Set && !u.Priority.Set
}

// UpdateIssueRequest 更新问题请求
type UpdateIssueRequest struct {
	ID string `json:"id"`
	IssueUpdate
}

// AssignUsersRequest 指派用户请求
type AssignUsersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
}

// IssueResponse 问题响应，reporter/assignees/project 已解析
type IssueResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      model.IssueStatus   `json:"status"`
	Priority    model.IssuePriority `json:"priority"`
	Reporter    *UserResponse       `json:"reporter"`
	Assignees   []*UserResponse     `json:"assignees"`
	Project     *ProjectResponse    `json:"project"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
