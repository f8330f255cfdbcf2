package repository

import (
	"context"

	"github.com/kano20041101/xuexizhushou/internal/domain"
)

// ProfileRepository 定义了个人资料的存储操作。
type ProfileRepository interface {
	// FindOrCreate 读取用户的资料行，不存在时以 user.ID/user.Username 插入一行后再读取。
	// 插入使用 ON CONFLICT DO NOTHING，并发的首次读取不会报唯一约束错误。
	FindOrCreate(ctx context.Context, user *domain.User) (*domain.UserProfile, error)

	// Save 覆盖保存整行资料。
	Save(ctx context.Context, profile *domain.UserProfile) error

	// ListAvatarPaths 返回所有非空的头像路径，用于清理孤儿文件。
	ListAvatarPaths(ctx context.Context) ([]string, error)
}
