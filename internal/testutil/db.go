// Package testutil 提供测试用的数据库。
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kano20041101/xuexizhushou/internal/infra/setup"
)

// NewTestDB 在临时目录中创建一个 SQLite 数据库并完成迁移，测试结束时自动关闭
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // SQLite 只允许一个写连接

	require.NoError(t, setup.MigrateDB(db))
	t.Cleanup(func() { _ = setup.CloseDB(db) })
	return db
}
