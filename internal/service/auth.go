package service

import (
	"context"
	"errors"
	"strings"

	"github.com/kano20041101/xuexizhushou/internal/domain"
	"github.com/kano20041101/xuexizhushou/internal/repository"

	"github.com/sirupsen/logrus"
)

// AuthService 负责注册、登录以及用户列表。
type AuthService struct {
	userRepo repository.UserRepository
	tx       repository.Transactor
	hasher   PasswordHasher
}

// NewAuthService 创建 AuthService 实例，hasher 为 nil 时使用明文比对。
func NewAuthService(userRepo repository.UserRepository, tx repository.Transactor, hasher PasswordHasher) *AuthService {
	if userRepo == nil || tx == nil {
		panic("UserRepository and Transactor cannot be nil for AuthService")
	}
	if hasher == nil {
		hasher = PlainPasswordHasher{}
	}
	return &AuthService{userRepo: userRepo, tx: tx, hasher: hasher}
}

// Register 处理用户注册，返回新用户。
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	logCtx := logrus.WithField("username", username)

	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &domain.User{Username: username, Password: stored}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		if existing != nil {
			return ErrUsernameTaken
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return ErrUsernameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			logCtx.Warn("Registration failed: username already exists")
			return nil, err
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

// Login 校验用户名 (忽略大小写) 与密码 (区分大小写)，成功时返回该用户。
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	logCtx := logrus.WithField("username", username)

	var user *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.FindByUsernameFold(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: User not found")
			return nil, ErrUsernameNotFound
		}
		logCtx.WithError(err).Error("Login attempt failed: Error finding user")
		return nil, ErrInternalServer
	}

	if !s.hasher.Compare(user.Password, password) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return nil, ErrIncorrectPassword
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return user, nil
}

// ListUsers 返回全部用户，仅供调试接口使用。
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		users, err = s.userRepo.List(ctx)
		return err
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}
	return users, nil
}

// requireUser 在当前事务中确认用户存在
func requireUser(ctx context.Context, repo repository.UserRepository, userID uint) (*domain.User, error) {
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
