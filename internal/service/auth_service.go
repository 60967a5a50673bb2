package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"issue-hub/internal/dto"
	"issue-hub/internal/model"
	"issue-hub/internal/pkg/config"
	"issue-hub/internal/pkg/crypto"
	"issue-hub/internal/pkg/jwt"
	"issue-hub/internal/repository"
	"issue-hub/pkg/constants"
	pkgErrors "issue-hub/pkg/errors"
	"issue-hub/pkg/utils"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) (*dto.LoginResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	VerifyToken(token string) (*dto.UserInfo, error)
}

type authService struct {
	cfg         *config.AuthConfig
	tokens      *jwt.Manager
	userRepo    repository.UserRepository
	ldapService LDAPService
	log         *zap.Logger
}

func NewAuthService(
	cfg *config.AuthConfig,
	tokens *jwt.Manager,
	userRepo repository.UserRepository,
	ldapService LDAPService,
	log *zap.Logger,
) AuthService {
	return &authService{
		cfg:         cfg,
		tokens:      tokens,
		userRepo:    userRepo,
		ldapService: ldapService,
		log:         log.Named("auth"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup 注册本地用户
func (s *authService) Signup(req *dto.SignupRequest) (*dto.LoginResponse, error) {
	if !s.cfg.Local.Enabled {
		return nil, errLocalAuthDisabled
	}

	email := normalizeEmail(req.Email)
	if !utils.IsEmail(email) {
		return nil, errInvalidEmail
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, pkgErrors.ErrEmailTaken
	} else if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, internalErr(s.log, err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, internalErr(s.log, err)
	}

	user := &model.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  hash,
		AuthType:  constants.AuthTypeLocal,
	}
	if err := s.userRepo.Create(user); err != nil {
		// 并发注册同一邮箱
		if errors.Is(err, pkgErrors.ErrRecordExists) {
			return nil, pkgErrors.ErrEmailTaken
		}
		return nil, internalErr(s.log, err)
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID))
	return s.issueTokens(user)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var (
		user *model.User
		err  error
	)

	authType := req.AuthType
	if authType == "" {
		authType = constants.AuthTypeLocal
	}

	switch authType {
	case constants.AuthTypeLDAP:
		if !s.cfg.LDAP.Enabled {
			return nil, errLDAPAuthDisabled
		}
		ldapUser, err := s.ldapService.Authenticate(normalizeEmail(req.Email), req.Password)
		if err != nil {
			return nil, internalErr(s.log, err)
		}
		if user, err = s.syncLDAPUser(ldapUser); err != nil {
			return nil, err
		}

	case constants.AuthTypeLocal:
		if !s.cfg.Local.Enabled {
			return nil, errLocalAuthDisabled
		}
		if user, err = s.authenticateLocal(normalizeEmail(req.Email), req.Password); err != nil {
			return nil, err
		}

	default:
		return nil, errUnsupportedAuthType
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.log.Warn("update last login failed", zap.String("user_id", user.ID), zap.Error(err))
	}

	return s.issueTokens(user)
}

func (s *authService) authenticateLocal(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, storeErr(s.log, err, pkgErrors.ErrInvalidCredentials)
	}

	if user.AuthType != constants.AuthTypeLocal || !crypto.CheckPassword(password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}
	return user, nil
}

// syncLDAPUser LDAP 用户首次登录时创建本地记录
func (s *authService) syncLDAPUser(ldapUser *LDAPUser) (*model.User, error) {
	email := normalizeEmail(ldapUser.Email)

	user, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if user.AuthType != constants.AuthTypeLDAP {
			return nil, pkgErrors.ErrEmailTaken
		}
		return user, nil
	}
	if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, internalErr(s.log, err)
	}

	user = &model.User{
		FirstName: ldapUser.FirstName,
		LastName:  ldapUser.LastName,
		Email:     email,
		AuthType:  constants.AuthTypeLDAP,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, internalErr(s.log, err)
	}

	s.log.Info("ldap user provisioned", zap.String("user_id", user.ID))
	return user, nil
}

func (s *authService) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, constants.JWTTypeRefresh)
	if err != nil {
		return nil, err
	}

	// 重新读取用户，令牌中的资料可能已过期
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, storeErr(s.log, err, pkgErrors.ErrInvalidToken)
	}

	return s.issueTokens(user)
}

func (s *authService) VerifyToken(token string) (*dto.UserInfo, error) {
	claims, err := s.tokens.ValidateToken(token, constants.JWTTypeAccess)
	if err != nil {
		return nil, err
	}
	return claims.UserInfo(), nil
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	info := dto.ToUserInfo(user)

	accessToken, err := s.tokens.GenerateAccessToken(info)
	if err != nil {
		return nil, internalErr(s.log, err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(info)
	if err != nil {
		return nil, internalErr(s.log, err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.tokens.AccessExpireSeconds(),
		User:         dto.NewUserResponse(user),
	}, nil
}
