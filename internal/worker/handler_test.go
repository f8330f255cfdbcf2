package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kano20041101/xuexizhushou/internal/repository/mocks"
	"github.com/kano20041101/xuexizhushou/internal/tasks"
	"github.com/kano20041101/xuexizhushou/internal/worker"
)

type fakeFiles struct {
	old       []string
	removed   []string
	removeErr error
	cutoff    time.Time
}

func (f *fakeFiles) Remove(relPath string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, relPath)
	return nil
}

func (f *fakeFiles) ListAvatarsOlderThan(cutoff time.Time) ([]string, error) {
	f.cutoff = cutoff
	return f.old, nil
}

func TestAvatarCleanupHandler_ProcessTask(t *testing.T) {
	files := &fakeFiles{}
	h := worker.NewAvatarCleanupHandler(files)

	task, err := tasks.NewAvatarCleanupTask("uploads/avatars/old.png")
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"uploads/avatars/old.png"}, files.removed)
}

func TestAvatarCleanupHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := worker.NewAvatarCleanupHandler(&fakeFiles{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeAvatarCleanup, []byte("{not json")))

	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestAvatarCleanupHandler_RemoveFailureIsRetried(t *testing.T) {
	files := &fakeFiles{removeErr: errors.New("permission denied")}
	h := worker.NewAvatarCleanupHandler(files)
	payload, _ := json.Marshal(tasks.AvatarCleanupPayload{Path: "uploads/avatars/x.png"})

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeAvatarCleanup, payload))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestAvatarSweepHandler_RemovesOnlyUnreferenced(t *testing.T) {
	files := &fakeFiles{old: []string{
		"uploads/avatars/kept.png",
		"uploads/avatars/orphan.png",
	}}
	profileRepo := new(mocks.ProfileRepository)
	profileRepo.On("ListAvatarPaths", mock.Anything).Return([]string{"uploads/avatars/kept.png"}, nil).Once()

	h := worker.NewAvatarSweepHandler(files, profileRepo, time.Hour)
	before := time.Now()
	require.NoError(t, h.ProcessTask(context.Background(), tasks.NewAvatarSweepTask()))

	assert.Equal(t, []string{"uploads/avatars/orphan.png"}, files.removed)
	assert.True(t, files.cutoff.Before(before.Add(-59*time.Minute)), "grace period is applied")
	profileRepo.AssertExpectations(t)
}

func TestAvatarSweepHandler_NothingToScan(t *testing.T) {
	profileRepo := new(mocks.ProfileRepository)
	h := worker.NewAvatarSweepHandler(&fakeFiles{}, profileRepo, time.Hour)

	require.NoError(t, h.ProcessTask(context.Background(), tasks.NewAvatarSweepTask()))
	profileRepo.AssertNotCalled(t, "ListAvatarPaths", mock.Anything)
}

func TestWorkerServer_MuxRoutesTasks(t *testing.T) {
	files := &fakeFiles{}
	ws := worker.NewWorkerServer(asynq.RedisClientOpt{Addr: "localhost:6379"},
		worker.NewAvatarCleanupHandler(files),
		worker.NewAvatarSweepHandler(files, new(mocks.ProfileRepository), time.Hour),
		logrusForTest())

	task, err := tasks.NewAvatarCleanupTask("uploads/avatars/a.png")
	require.NoError(t, err)
	require.NoError(t, ws.Mux().ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"uploads/avatars/a.png"}, files.removed)
}

func logrusForTest() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
