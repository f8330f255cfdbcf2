package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kano20041101/xuexizhushou/internal/domain"
	"github.com/kano20041101/xuexizhushou/internal/repository"
	"github.com/kano20041101/xuexizhushou/internal/repository/mocks"
	"github.com/kano20041101/xuexizhushou/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeAvatarStorage struct {
	path  string
	err   error
	saved []string // 保存过的文件内容
}

func (f *fakeAvatarStorage) SaveAvatar(_ context.Context, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.saved = append(f.saved, string(b))
	return f.path, nil
}

type fakeAvatarCleaner struct {
	paths []string
}

func (f *fakeAvatarCleaner) EnqueueAvatarCleanup(_ context.Context, path string) error {
	f.paths = append(f.paths, path)
	return nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func newProfileServiceForTest(storage *fakeAvatarStorage, cleaner *fakeAvatarCleaner) (*service.ProfileService, *mocks.UserRepository, *mocks.ProfileRepository) {
	userRepo := new(mocks.UserRepository)
	profileRepo := new(mocks.ProfileRepository)
	var c service.AvatarCleaner
	if cleaner != nil {
		c = cleaner
	}
	svc := service.NewProfileService(userRepo, profileRepo, new(mocks.Transactor), storage, c)
	return svc, userRepo, profileRepo
}

func TestProfileService_GetProfile_LazyCreate(t *testing.T) {
	svc, userRepo, profileRepo := newProfileServiceForTest(&fakeAvatarStorage{}, nil)
	ctx := context.Background()

	user := &domain.User{ID: 1, Username: "alice"}
	userRepo.On("FindByID", ctx, uint(1)).Return(user, nil)
	profileRepo.On("FindOrCreate", ctx, user).Return(&domain.UserProfile{ID: 1, Username: "alice"}, nil)

	profile, err := svc.GetProfile(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, uint(1), profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.Nil(t, profile.Grade)
	profileRepo.AssertExpectations(t)
}

func TestProfileService_GetProfile_UserNotFound(t *testing.T) {
	svc, userRepo, profileRepo := newProfileServiceForTest(&fakeAvatarStorage{}, nil)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(42)).Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetProfile(ctx, 42)

	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
	assert.Equal(t, "User not found", err.Error())
	profileRepo.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfile_FieldRules(t *testing.T) {
	svc, userRepo, profileRepo := newProfileServiceForTest(&fakeAvatarStorage{}, nil)
	ctx := context.Background()

	user := &domain.User{ID: 1, Username: "alice"}
	grade := domain.GradeJunior
	existing := &domain.UserProfile{
		ID:          1,
		Username:    "alice",
		Grade:       &grade,
		School:      strPtr("Old School"),
		Major:       strPtr("Math"),
		TargetScore: floatPtr(380),
	}
	userRepo.On("FindByID", ctx, uint(1)).Return(user, nil)
	profileRepo.On("FindOrCreate", ctx, user).Return(existing, nil)

	var saved *domain.UserProfile
	profileRepo.On("Save", ctx, mock.AnythingOfType("*domain.UserProfile")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.UserProfile) }).
		Return(nil).Once()

	err := svc.UpdateProfile(ctx, 1, service.ProfileUpdate{
		Grade:       strPtr(""),  // 空年级视为未提供
		School:      strPtr(""),  // 文本字段出现即覆盖
		TargetScore: floatPtr(0), // 0 分视为未提供
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	require.NotNil(t, saved.School)
	assert.Equal(t, "", *saved.School)
	assert.Equal(t, "Math", *saved.Major, "absent fields stay unchanged")
	assert.Equal(t, 380.0, *saved.TargetScore)
	assert.Equal(t, domain.GradeJunior, *saved.Grade)
}

func TestProfileService_UpdateProfile_SetsGradeAndScore(t *testing.T) {
	svc, userRepo, profileRepo := newProfileServiceForTest(&fakeAvatarStorage{}, nil)
	ctx := context.Background()

	user := &domain.User{ID: 2, Username: "bob"}
	userRepo.On("FindByID", ctx, uint(2)).Return(user, nil)
	profileRepo.On("FindOrCreate", ctx, user).Return(&domain.UserProfile{ID: 2, Username: "bob"}, nil)
	profileRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.Grade != nil && *p.Grade == domain.GradeSenior &&
			p.TargetScore != nil && *p.TargetScore == 402.5
	})).Return(nil).Once()

	err := svc.UpdateProfile(ctx, 2, service.ProfileUpdate{
		Grade:       strPtr("大四"),
		TargetScore: floatPtr(402.5),
	})

	require.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestProfileService_UpdateProfile_InvalidGrade(t *testing.T) {
	svc, userRepo, profileRepo := newProfileServiceForTest(&fakeAvatarStorage{}, nil)

	err := svc.UpdateProfile(context.Background(), 1, service.ProfileUpdate{Grade: strPtr("研一")})

	assert.ErrorIs(t, err, service.ErrInvalidGrade)
	assert.Equal(t, service.KindValidation, service.KindOf(err))
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	profileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfile_UserNotFound(t *testing.T) {
	svc, userRepo, profileRepo := newProfileServiceForTest(&fakeAvatarStorage{}, nil)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(9)).Return(nil, repository.ErrUserNotFound)

	err := svc.UpdateProfile(ctx, 9, service.ProfileUpdate{School: strPtr("X")})

	assert.ErrorIs(t, err, service.ErrUserNotFound)
	profileRepo.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfile_AvatarReplaced(t *testing.T) {
	storage := &fakeAvatarStorage{path: "uploads/avatars/new.png"}
	cleaner := &fakeAvatarCleaner{}
	svc, userRepo, profileRepo := newProfileServiceForTest(storage, cleaner)
	ctx := context.Background()

	user := &domain.User{ID: 1, Username: "alice"}
	userRepo.On("FindByID", ctx, uint(1)).Return(user, nil)
	profileRepo.On("FindOrCreate", ctx, user).
		Return(&domain.UserProfile{ID: 1, Username: "alice", Avatar: strPtr("uploads/avatars/old.png")}, nil)
	profileRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.Avatar != nil && *p.Avatar == "uploads/avatars/new.png"
	})).Return(nil).Once()

	err := svc.UpdateProfile(ctx, 1, service.ProfileUpdate{
		Avatar: &service.AvatarUpload{Filename: "me.png", Content: strings.NewReader("png-bytes")},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"png-bytes"}, storage.saved)
	assert.Equal(t, []string{"uploads/avatars/old.png"}, cleaner.paths, "old avatar is scheduled for removal")
	profileRepo.AssertExpectations(t)
}

func TestProfileService_UpdateProfile_SaveFailsNoCleanup(t *testing.T) {
	storage := &fakeAvatarStorage{path: "uploads/avatars/new.png"}
	cleaner := &fakeAvatarCleaner{}
	svc, userRepo, profileRepo := newProfileServiceForTest(storage, cleaner)
	ctx := context.Background()

	user := &domain.User{ID: 1, Username: "alice"}
	userRepo.On("FindByID", ctx, uint(1)).Return(user, nil)
	profileRepo.On("FindOrCreate", ctx, user).
		Return(&domain.UserProfile{ID: 1, Username: "alice", Avatar: strPtr("uploads/avatars/old.png")}, nil)
	profileRepo.On("Save", ctx, mock.Anything).Return(errors.New("deadlock")).Once()

	err := svc.UpdateProfile(ctx, 1, service.ProfileUpdate{
		Avatar: &service.AvatarUpload{Filename: "me.png", Content: strings.NewReader("x")},
	})

	assert.ErrorIs(t, err, service.ErrInternalServer)
	assert.Empty(t, cleaner.paths, "rolled back update keeps the old avatar")
}
