package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"issue-hub/internal/model"
	pkgErrors "issue-hub/pkg/errors"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByIDs(ids []string) ([]*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Search(keyword string, opts ...QueryOption) ([]*model.User, error)
	UpdateLastLogin(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgErrors.ErrRecordExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建用户失败", err)
	}
	return nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询用户失败", err)
	}
	return &user, nil
}

// FindByIDs 批量查询，不存在的ID直接忽略
func (r *userRepository) FindByIDs(ids []string) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "批量查询用户失败", err)
	}
	return users, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询用户失败", err)
	}
	return &user, nil
}

// Search 按邮箱或姓名模糊搜索
func (r *userRepository) Search(keyword string, opts ...QueryOption) ([]*model.User, error) {
	users := make([]*model.User, 0)
	query := r.db.Model(&model.User{})

	if keyword = strings.TrimSpace(keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}

	if err := applyOptions(query, opts).Find(&users).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "搜索用户失败", err)
	}
	return users, nil
}

func (r *userRepository) UpdateLastLogin(id string) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", time.Now().UTC()).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新登录时间失败", err)
	}
	return nil
}
