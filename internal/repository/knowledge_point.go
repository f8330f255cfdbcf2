package repository

import (
	"context"

	"github.com/kano20041101/xuexizhushou/internal/domain"
)

// KnowledgePointRepository 定义了知识点的增删改查。
type KnowledgePointRepository interface {
	// FindByID 按 kp_id 查找，不存在时返回 ErrKnowledgePointNotFound。
	FindByID(ctx context.Context, kpID uint) (*domain.KnowledgePoint, error)

	// ListByUser 返回用户的知识点，按 create_time 倒序；subject 为空时不过滤。
	ListByUser(ctx context.Context, userID uint, subject string) ([]domain.KnowledgePoint, error)

	// ExistsByName 检查 (用户, 知识点名称) 是否已存在。
	ExistsByName(ctx context.Context, userID uint, pointName string) (bool, error)

	// Create 插入新知识点，违反唯一索引时返回 ErrDuplicateEntry。
	Create(ctx context.Context, kp *domain.KnowledgePoint) error

	// Save 覆盖保存整行。
	Save(ctx context.Context, kp *domain.KnowledgePoint) error

	// Delete 按 kp_id 删除，记录不存在时返回 ErrKnowledgePointNotFound。
	Delete(ctx context.Context, kpID uint) error
}
