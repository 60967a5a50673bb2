package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-hub/internal/model"
	"issue-hub/internal/pkg/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:       "sqlite",
		Database:     fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.True(t, db.Migrator().HasTable(&model.Project{}))
	assert.True(t, db.Migrator().HasTable(&model.Issue{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
