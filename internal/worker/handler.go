package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/kano20041101/xuexizhushou/internal/repository"
	"github.com/kano20041101/xuexizhushou/internal/tasks"
)

// AvatarFiles 是 worker 需要的头像文件操作
type AvatarFiles interface {
	Remove(relPath string) error
	ListAvatarsOlderThan(cutoff time.Time) ([]string, error)
}

// AvatarCleanupHandler 删除被替换掉的旧头像
type AvatarCleanupHandler struct {
	files AvatarFiles
}

// NewAvatarCleanupHandler 创建 Handler 实例
func NewAvatarCleanupHandler(files AvatarFiles) *AvatarCleanupHandler {
	return &AvatarCleanupHandler{files: files}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *AvatarCleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.AvatarCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx := logrus.WithFields(logrus.Fields{"task_type": t.Type(), "path": payload.Path})

	if err := h.files.Remove(payload.Path); err != nil {
		logCtx.WithError(err).Error("Failed to remove replaced avatar")
		return err
	}
	logCtx.Info("Replaced avatar removed")
	return nil
}

// AvatarSweepHandler 删除没有任何资料引用、且超过宽限期的头像文件。
// 这些文件通常来自写盘后事务提交失败的请求。
type AvatarSweepHandler struct {
	files       AvatarFiles
	profileRepo repository.ProfileRepository
	grace       time.Duration
	now         func() time.Time
}

// NewAvatarSweepHandler 创建 Handler 实例，grace 为文件最短保留时间
func NewAvatarSweepHandler(files AvatarFiles, profileRepo repository.ProfileRepository, grace time.Duration) *AvatarSweepHandler {
	return &AvatarSweepHandler{files: files, profileRepo: profileRepo, grace: grace, now: time.Now}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *AvatarSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	candidates, err := h.files.ListAvatarsOlderThan(h.now().Add(-h.grace))
	if err != nil {
		return fmt.Errorf("failed to list avatar files: %w", err)
	}
	if len(candidates) == 0 {
		return nil
	}

	referenced, err := h.profileRepo.ListAvatarPaths(ctx)
	if err != nil {
		return fmt.Errorf("failed to list referenced avatars: %w", err)
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		inUse[p] = struct{}{}
	}

	removed := 0
	for _, p := range candidates {
		if _, ok := inUse[p]; ok {
			continue
		}
		if err := h.files.Remove(p); err != nil {
			logCtx.WithError(err).WithField("path", p).Warn("Failed to remove orphaned avatar")
			continue
		}
		removed++
	}
	logCtx.WithFields(logrus.Fields{"scanned": len(candidates), "removed": removed}).Info("Avatar sweep finished")
	return nil
}
