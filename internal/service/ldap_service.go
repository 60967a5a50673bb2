package service

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"issue-hub/internal/pkg/config"
	pkgErrors "issue-hub/pkg/errors"
)

// LDAPUser LDAP 目录中的用户属性
type LDAPUser struct {
	Email     string
	FirstName string
	LastName  string
}

type LDAPService interface {
	Authenticate(email, password string) (*LDAPUser, error)
}

type ldapService struct {
	cfg *config.LDAPConfig
}

func NewLDAPService(cfg *config.LDAPConfig) LDAPService {
	return &ldapService{
		cfg: cfg,
	}
}

// Authenticate 先用管理员账号查找用户 DN，再用用户密码绑定
func (s *ldapService) Authenticate(email, password string) (*LDAPUser, error) {
	if !s.cfg.Enabled {
		return nil, errLDAPAuthDisabled
	}

	conn, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	entry, err := s.searchUser(conn, email)
	if err != nil {
		return nil, err
	}

	if err := conn.Bind(entry.DN, password); err != nil {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	user := &LDAPUser{
		Email:     entry.GetAttributeValue(s.cfg.Attributes.Email),
		FirstName: entry.GetAttributeValue(s.cfg.Attributes.FirstName),
		LastName:  entry.GetAttributeValue(s.cfg.Attributes.LastName),
	}
	if user.Email == "" {
		user.Email = email
	}
	return user, nil
}

func (s *ldapService) connect() (*ldap.Conn, error) {
	address := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	scheme := "ldap"
	if s.cfg.UseSSL {
		scheme = "ldaps"
	}

	conn, err := ldap.DialURL(fmt.Sprintf("%s://%s", scheme, address))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP connection failed", err)
	}

	// 使用管理员账号绑定
	if err := conn.Bind(s.cfg.BindDN, s.cfg.BindPassword); err != nil {
		conn.Close()
		return nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP bind failed", err)
	}

	return conn, nil
}

func (s *ldapService) searchUser(conn *ldap.Conn, email string) (*ldap.Entry, error) {
	filter := fmt.Sprintf(s.cfg.UserFilter, ldap.EscapeFilter(email))

	searchRequest := ldap.NewSearchRequest(
		s.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		filter,
		[]string{s.cfg.Attributes.Email, s.cfg.Attributes.FirstName, s.cfg.Attributes.LastName},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP search failed", err)
	}

	// 找不到用户与密码错误返回同一个错误
	if len(result.Entries) != 1 {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return result.Entries[0], nil
}
