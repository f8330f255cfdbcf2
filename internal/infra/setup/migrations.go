package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kano20041101/xuexizhushou/internal/domain"
)

// MigrateDB 在启动时建表，可重复执行。
// user_login 必须先于两张引用它的表创建。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		logrus.Errorf("Failed to auto-migrate user_login table: %v", err)
		return fmt.Errorf("failed to migrate user_login table: %w", err)
	}

	err := db.AutoMigrate(
		&domain.UserProfile{},
		&domain.KnowledgePoint{},
	)
	if err != nil {
		logrus.Errorf("Failed to auto-migrate other tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
