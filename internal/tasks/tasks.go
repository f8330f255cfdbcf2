package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// 任务类型常量
const (
	TypeAvatarCleanup = "avatar:cleanup" // 删除被替换掉的旧头像
	TypeAvatarSweep   = "avatar:sweep"   // 定期清理没有资料引用的头像文件
)

// AvatarCleanupPayload 是删除旧头像任务的数据
type AvatarCleanupPayload struct {
	Path string `json:"path"`
}

// NewAvatarCleanupTask 创建删除旧头像的任务
func NewAvatarCleanupTask(path string) (*asynq.Task, error) {
	payload, err := json.Marshal(AvatarCleanupPayload{Path: path})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAvatarCleanup, payload, asynq.MaxRetry(3)), nil
}

// NewAvatarSweepTask 创建定期清理任务，没有负载
func NewAvatarSweepTask() *asynq.Task {
	return asynq.NewTask(TypeAvatarSweep, nil, asynq.MaxRetry(0))
}

// Enqueuer 把后台任务投递到 asynq 队列。
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer 创建 Enqueuer 实例
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	if client == nil {
		panic("asynq client cannot be nil for Enqueuer")
	}
	return &Enqueuer{client: client}
}

// EnqueueAvatarCleanup 投递删除旧头像的任务
func (e *Enqueuer) EnqueueAvatarCleanup(ctx context.Context, path string) error {
	task, err := NewAvatarCleanupTask(path)
	if err != nil {
		return fmt.Errorf("failed to build avatar cleanup task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, asynq.Queue("low")); err != nil {
		return fmt.Errorf("failed to enqueue avatar cleanup task: %w", err)
	}
	return nil
}
