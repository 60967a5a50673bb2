package repository

import (
	"errors"

	"gorm.io/gorm"

	"issue-hub/internal/model"
	pkgErrors "issue-hub/pkg/errors"
)

type ProjectRepository interface {
	Create(project *model.Project) error
	FindByID(id string) (*model.Project, error)
	// ListAccessible 用户作为 host 或成员的项目
	ListAccessible(userID string, opts ...QueryOption) ([]*model.Project, error)
	// Save 整行写回可变字段，成员数组并发修改时后写覆盖先写
	Save(project *model.Project) error
	Delete(id string) (bool, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目失败", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id string) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) ListAccessible(userID string, opts ...QueryOption) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)

	query := r.db.Model(&model.Project{}).
		Where("host_id = ?", userID).
		Or(jsonArrayContains(r.db, "members"), userID)

	if err := applyOptions(query, opts).Find(&projects).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) Save(project *model.Project) error {
	err := r.db.Model(project).
		Select("title", "description", "members", "updated_at").
		Updates(project).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目失败", err)
	}
	return nil
}

func (r *projectRepository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Project{})
	if result.Error != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除项目失败", result.Error)
	}
	return result.RowsAffected > 0, nil
}
