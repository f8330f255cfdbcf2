package service

import (
	"context"
	"errors"
	"io"

	"github.com/kano20041101/xuexizhushou/internal/domain"
	"github.com/kano20041101/xuexizhushou/internal/repository"

	"github.com/sirupsen/logrus"
)

// AvatarStorage 保存上传的头像并返回要写入资料的相对路径。
type AvatarStorage interface {
	SaveAvatar(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// AvatarCleaner 在头像被替换后异步删除旧文件。
type AvatarCleaner interface {
	EnqueueAvatarCleanup(ctx context.Context, path string) error
}

// AvatarUpload 是一次头像上传
type AvatarUpload struct {
	Filename string
	Content  io.Reader
}

// ProfileUpdate 是资料的部分更新，nil 表示请求中没有该字段。
//
// 文本字段只要出现就覆盖 (空字符串会清空)；Grade 为空串、TargetScore 为 0
// 时与未提供等同，沿用旧接口的真值判断。
type ProfileUpdate struct {
	Grade               *string
	PostgraduateSession *string
	School              *string
	Major               *string
	TargetSchool        *string
	TargetMajor         *string
	TargetScore         *float64
	Avatar              *AvatarUpload
}

// ProfileService 负责个人资料的读取与更新。
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tx          repository.Transactor
	storage     AvatarStorage
	cleaner     AvatarCleaner
}

// NewProfileService 创建 ProfileService 实例，cleaner 可以为 nil (不清理旧头像)。
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository,
	tx repository.Transactor, storage AvatarStorage, cleaner AvatarCleaner) *ProfileService {
	if userRepo == nil || profileRepo == nil || tx == nil || storage == nil {
		panic("repositories, Transactor and AvatarStorage cannot be nil for ProfileService")
	}
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tx:          tx,
		storage:     storage,
		cleaner:     cleaner,
	}
}

// GetProfile 返回用户资料，没有资料行时在同一事务中创建。
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	logCtx := logrus.WithField("user_id", userID)

	var profile *domain.UserProfile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := requireUser(ctx, s.userRepo, userID)
		if err != nil {
			return err
		}
		profile, err = s.profileRepo.FindOrCreate(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		logCtx.WithError(err).Error("Failed to load profile")
		return nil, ErrInternalServer
	}
	return profile, nil
}

// UpdateProfile 按 ProfileUpdate 覆盖资料字段，并在提供文件时保存新头像。
// 头像文件在提交前写入磁盘，提交失败会留下孤儿文件，由定期清理任务回收。
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) error {
	logCtx := logrus.WithField("user_id", userID)

	var grade *domain.Grade
	if in.Grade != nil && *in.Grade != "" {
		g, err := domain.ParseGrade(*in.Grade)
		if err != nil {
			logCtx.WithError(err).Warn("Profile update rejected")
			return ErrInvalidGrade
		}
		grade = &g
	}

	var oldAvatar, newAvatar string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := requireUser(ctx, s.userRepo, userID)
		if err != nil {
			return err
		}
		profile, err := s.profileRepo.FindOrCreate(ctx, user)
		if err != nil {
			return err
		}

		if grade != nil {
			profile.Grade = grade
		}
		assignText(&profile.PostgraduateSession, in.PostgraduateSession)
		assignText(&profile.School, in.School)
		assignText(&profile.Major, in.Major)
		assignText(&profile.TargetSchool, in.TargetSchool)
		assignText(&profile.TargetMajor, in.TargetMajor)
		if in.TargetScore != nil && *in.TargetScore != 0 {
			score := *in.TargetScore
			profile.TargetScore = &score
		}

		if in.Avatar != nil {
			path, err := s.storage.SaveAvatar(ctx, in.Avatar.Filename, in.Avatar.Content)
			if err != nil {
				return err
			}
			if profile.Avatar != nil {
				oldAvatar = *profile.Avatar
			}
			newAvatar = path
			profile.Avatar = &path
		}

		return s.profileRepo.Save(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		logCtx.WithError(err).Error("Failed to update profile")
		return ErrInternalServer
	}

	if oldAvatar != "" && oldAvatar != newAvatar && s.cleaner != nil {
		if err := s.cleaner.EnqueueAvatarCleanup(ctx, oldAvatar); err != nil {
			logCtx.WithError(err).WithField("avatar", oldAvatar).Warn("Failed to enqueue avatar cleanup")
		}
	}

	logCtx.Info("Profile updated successfully")
	return nil
}

func assignText(dst **string, v *string) {
	if v == nil {
		return
	}
	s := *v
	*dst = &s
}
