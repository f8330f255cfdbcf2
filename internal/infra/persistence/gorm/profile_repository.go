package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kano20041101/xuexizhushou/internal/domain"
	"github.com/kano20041101/xuexizhushou/internal/repository"
)

// GormProfileRepository 是 ProfileRepository 接口的 GORM 实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository 创建 GormProfileRepository 实例
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	if db == nil {
		panic("database connection cannot be nil for GormProfileRepository")
	}
	return &GormProfileRepository{db: db}
}

// FindOrCreate 先尝试插入 (冲突时忽略)，再按主键读回。
// 两个请求同时首次读取同一用户时，只有一个插入生效，另一个读到同一行。
func (r *GormProfileRepository) FindOrCreate(ctx context.Context, user *domain.User) (*domain.UserProfile, error) {
	db := conn(ctx, r.db)

	seed := domain.UserProfile{ID: user.ID, Username: user.Username}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("gorm: seed profile for user %d: %w", user.ID, err)
	}

	var profile domain.UserProfile
	if err := db.First(&profile, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 用户名已被另一行资料占用时会走到这里
			return nil, repository.ErrProfileNotFound
		}
		return nil, fmt.Errorf("gorm: find profile %d: %w", user.ID, err)
	}
	return &profile, nil
}

// Save 覆盖保存整行资料
func (r *GormProfileRepository) Save(ctx context.Context, profile *domain.UserProfile) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(profile).Error; err != nil {
		return fmt.Errorf("gorm: save profile %d: %w", profile.ID, err)
	}
	return nil
}

// ListAvatarPaths 返回所有非空头像路径
func (r *GormProfileRepository) ListAvatarPaths(ctx context.Context) ([]string, error) {
	paths := make([]string, 0)
	err := conn(ctx, r.db).Model(&domain.UserProfile{}).
		Where("avatar IS NOT NULL AND avatar <> ''").
		Pluck("avatar", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list avatar paths: %w", err)
	}
	return paths, nil
}
