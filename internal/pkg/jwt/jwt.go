package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"issue-hub/internal/dto"
	"issue-hub/internal/pkg/config"
	"issue-hub/pkg/constants"
	pkgErrors "issue-hub/pkg/errors"
)

// UserClaims 用户Claims
type UserClaims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AuthType  string `json:"auth_type"` // ldap or local
	Type      string `json:"type"`      // access or refresh
	jwt.RegisteredClaims
}

// UserInfo 转换为调用者身份
func (c *UserClaims) UserInfo() *dto.UserInfo {
	return &dto.UserInfo{
		ID:        c.UserID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		AuthType:  c.AuthType,
	}
}

// Manager 签发与校验Token
type Manager struct {
	secret        []byte
	accessExpire  time.Duration
	refreshExpire time.Duration
}

// NewManager 创建Token管理器
func NewManager(cfg config.JWTConfig) *Manager {
	return &Manager{
		secret:        []byte(cfg.Secret),
		accessExpire:  time.Duration(cfg.AccessTokenExpire) * time.Second,
		refreshExpire: time.Duration(cfg.RefreshTokenExpire) * time.Second,
	}
}

// AccessExpireSeconds access token 有效期（秒）
func (m *Manager) AccessExpireSeconds() int {
	return int(m.accessExpire / time.Second)
}

// GenerateAccessToken 生成访问Token
func (m *Manager) GenerateAccessToken(user *dto.UserInfo) (string, error) {
	return m.generate(user, constants.JWTTypeAccess, m.accessExpire)
}

// GenerateRefreshToken 生成刷新Token
func (m *Manager) GenerateRefreshToken(user *dto.UserInfo) (string, error) {
	return m.generate(user, constants.JWTTypeRefresh, m.refreshExpire)
}

func (m *Manager) generate(user *dto.UserInfo, tokenType string, expire time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AuthType:  user.AuthType,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析Token，同时校验签名与有效期
func (m *Manager) ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, pkgErrors.ErrTokenExpired
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "invalid token", err)
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}

	return nil, pkgErrors.ErrInvalidToken
}

// ValidateToken 校验Token并要求类型匹配
func (m *Manager) ValidateToken(tokenString, tokenType string) (*UserClaims, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != tokenType {
		return nil, pkgErrors.ErrInvalidToken
	}

	return claims, nil
}
