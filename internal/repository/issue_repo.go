package repository

import (
	"errors"

	"gorm.io/gorm"

	"issue-hub/internal/model"
	pkgErrors "issue-hub/pkg/errors"
)

type IssueRepository interface {
	Create(issue *model.Issue) error
	FindByID(id string) (*model.Issue, error)
	ListByProject(projectID string, opts ...QueryOption) ([]*model.Issue, error)
	// Save 整行写回可变字段，指派数组并发修改时后写覆盖先写
	Save(issue *model.Issue) error
	Delete(id string) (bool, error)
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(issue *model.Issue) error {
	if err := r.db.Create(issue).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建问题失败", err)
	}
	return nil
}

func (r *issueRepository) FindByID(id string) (*model.Issue, error) {
	var issue model.Issue
	err := r.db.Where("id = ?", id).First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询问题失败", err)
	}
	return &issue, nil
}

func (r *issueRepository) ListByProject(projectID string, opts ...QueryOption) ([]*model.Issue, error) {
	issues := make([]*model.Issue, 0)
	query := r.db.Model(&model.Issue{}).Where("project_id = ?", projectID)
	if err := applyOptions(query, opts).Find(&issues).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询问题列表失败", err)
	}
	return issues, nil
}

func (r *issueRepository) Save(issue *model.Issue) error {
	err := r.db.Model(issue).
		Select("title", "description", "status", "priority", "assignees", "updated_at").
		Updates(issue).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新问题失败", err)
	}
	return nil
}

func (r *issueRepository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Issue{})
	if result.Error != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除问题失败", result.Error)
	}
	return result.RowsAffected > 0, nil
}
