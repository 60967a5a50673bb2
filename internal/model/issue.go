package model

import (
	"github.com/samber/lo"
	"gorm.io/datatypes"
)

const IssueTableName = "issues"

// IssueStatus 问题状态
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "OPEN"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusResolved   IssueStatus = "RESOLVED"
	IssueStatusClosed     IssueStatus = "CLOSED"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed:
		return true
	}
	return false
}

// IssuePriority 问题优先级
type IssuePriority string

const (
	IssuePriorityLow      IssuePriority = "LOW"
	IssuePriorityMedium   IssuePriority = "MEDIUM"
	IssuePriorityHigh     IssuePriority = "HIGH"
	IssuePriorityCritical IssuePriority = "CRITICAL"
)

func (p IssuePriority) Valid() bool {
	switch p {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityCritical:
		return true
	}
	return false
}

// Issue 问题模型
// 项目删除后 issue 不级联删除，project_id 可能指向已不存在的项目
type Issue struct {
	BaseModel
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Status      IssueStatus                 `gorm:"size:20;not null;default:'OPEN'" json:"status"`
	Priority    IssuePriority               `gorm:"size:20;not null;default:'LOW'" json:"priority"`
	ReporterID  string                      `gorm:"size:36;not null;index" json:"reporter_id"`
	ProjectID   string                      `gorm:"size:36;not null;index" json:"project_id"`
	Assignees   datatypes.JSONSlice[string] `json:"assignees"`
}

func (Issue) TableName() string {
	return IssueTableName
}

// IsAssigned 用户是否已被指派
func (i *Issue) IsAssigned(userID string) bool {
	return lo.Contains(i.Assignees, userID)
}
