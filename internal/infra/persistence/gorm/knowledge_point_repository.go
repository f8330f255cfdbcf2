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

// GormKnowledgePointRepository 是 KnowledgePointRepository 接口的 GORM 实现
type GormKnowledgePointRepository struct {
	db *gorm.DB
}

// NewGormKnowledgePointRepository 创建 GormKnowledgePointRepository 实例
func NewGormKnowledgePointRepository(db *gorm.DB) *GormKnowledgePointRepository {
	if db == nil {
		panic("database connection cannot be nil for GormKnowledgePointRepository")
	}
	return &GormKnowledgePointRepository{db: db}
}

func (r *GormKnowledgePointRepository) FindByID(ctx context.Context, kpID uint) (*domain.KnowledgePoint, error) {
	var kp domain.KnowledgePoint
	err := conn(ctx, r.db).First(&kp, kpID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKnowledgePointNotFound
		}
		return nil, fmt.Errorf("gorm: find knowledge point %d: %w", kpID, err)
	}
	return &kp, nil
}

// ListByUser 走 idx_id_subject 索引，按创建时间倒序
func (r *GormKnowledgePointRepository) ListByUser(ctx context.Context, userID uint, subject string) ([]domain.KnowledgePoint, error) {
	points := make([]domain.KnowledgePoint, 0)
	q := conn(ctx, r.db).Where("id = ?", userID)
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if err := q.Order("create_time DESC").Order("kp_id DESC").Find(&points).Error; err != nil {
		return nil, fmt.Errorf("gorm: list knowledge points of user %d: %w", userID, err)
	}
	return points, nil
}

func (r *GormKnowledgePointRepository) ExistsByName(ctx context.Context, userID uint, pointName string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&domain.KnowledgePoint{}).
		Where("id = ? AND point_name = ?", userID, pointName).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count knowledge points named '%s' of user %d: %w", pointName, userID, err)
	}
	return count > 0, nil
}

func (r *GormKnowledgePointRepository) Create(ctx context.Context, kp *domain.KnowledgePoint) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(kp).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create knowledge point '%s' of user %d: %w", kp.PointName, kp.UserID, err)
	}
	return nil
}

func (r *GormKnowledgePointRepository) Save(ctx context.Context, kp *domain.KnowledgePoint) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(kp).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save knowledge point %d: %w", kp.KPID, err)
	}
	return nil
}

func (r *GormKnowledgePointRepository) Delete(ctx context.Context, kpID uint) error {
	result := conn(ctx, r.db).Delete(&domain.KnowledgePoint{}, kpID)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete knowledge point %d: %w", kpID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrKnowledgePointNotFound
	}
	return nil
}
