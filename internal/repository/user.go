package repository

import (
	"context"

	"github.com/kano20041101/xuexizhushou/internal/domain"
)

// UserRepository 定义了登录用户的存储和检索操作。
type UserRepository interface {
	// FindByID 根据用户 ID 查找用户，不存在时返回 ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername 按用户名精确查找 (注册时查重)。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByUsernameFold 按用户名忽略大小写查找 (登录)。
	FindByUsernameFold(ctx context.Context, username string) (*domain.User, error)

	// Create 插入新用户，成功后 user.ID 被填充。
	Create(ctx context.Context, user *domain.User) error

	// List 返回全部用户 (调试接口)。
	List(ctx context.Context) ([]domain.User, error)
}
