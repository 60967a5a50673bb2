package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file values and defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  database: issue-hub.db
auth:
  jwt:
    secret: s3cret
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "issue-hub", cfg.Server.Name)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "s3cret", cfg.Auth.JWT.Secret)
		assert.Equal(t, 7200, cfg.Auth.JWT.AccessTokenExpire)
		assert.True(t, cfg.Auth.Local.Enabled)
		assert.Equal(t, "(mail=%s)", cfg.Auth.LDAP.UserFilter)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Same(t, cfg, GlobalConfig)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, `
auth:
  jwt:
    secret: from-file
`)
		t.Setenv("AUTH_JWT_SECRET", "from-env")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Auth.JWT.Secret)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 8080\n")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestGetDSN(t *testing.T) {
	mysql := DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, Database: "tracker", Username: "u", Password: "p"}
	assert.Equal(t, "u:p@tcp(db:3306)/tracker?charset=utf8mb4&parseTime=True&loc=Local", mysql.GetDSN())

	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, Database: "tracker", Username: "u", Password: "p"}
	assert.Equal(t, "host=db user=u password=p dbname=tracker port=5432 sslmode=disable TimeZone=UTC", pg.GetDSN())

	lite := DatabaseConfig{Driver: "sqlite", Database: "file::memory:"}
	assert.Equal(t, "file::memory:", lite.GetDSN())
}
