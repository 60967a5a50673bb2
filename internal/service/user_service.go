package service

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"issue-hub/internal/dto"
	"issue-hub/internal/model"
	"issue-hub/internal/pkg/auth"
	"issue-hub/internal/repository"
	pkgErrors "issue-hub/pkg/errors"
)

const defaultUserSearchLimit = 20

type UserService interface {
	Me(caller *dto.UserInfo) (*dto.UserResponse, error)
	Search(query *dto.UserSearchQuery, caller *dto.UserInfo) ([]*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.Named("user"),
	}
}

func (s *userService) Me(caller *dto.UserInfo) (*dto.UserResponse, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(caller.ID)
	if err != nil {
		return nil, storeErr(s.log, err, pkgErrors.ErrUserNotFound)
	}
	return dto.NewUserResponse(user), nil
}

// Search 供添加成员、指派时选择用户
func (s *userService) Search(query *dto.UserSearchQuery, caller *dto.UserInfo) ([]*dto.UserResponse, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultUserSearchLimit
	}

	users, err := s.userRepo.Search(query.Keyword, repository.WithOrder("email ASC"), repository.WithLimit(limit))
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	return lo.Map(users, func(u *model.User, _ int) *dto.UserResponse { return dto.NewUserResponse(u) }), nil
}
