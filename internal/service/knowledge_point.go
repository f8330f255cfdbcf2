package service

import (
	"context"
	"errors"
	"time"

	"github.com/kano20041101/xuexizhushou/internal/domain"
	"github.com/kano20041101/xuexizhushou/internal/repository"

	"github.com/sirupsen/logrus"
)

// CreateKnowledgePointInput 是新建知识点的参数，UserID 为归属用户。
type CreateKnowledgePointInput struct {
	UserID     uint
	Subject    string
	PointName  string
	Category   string
	Importance string // 为空时默认 中
	Difficulty string // 为空时默认 中
	ExamPoints *string
	Content    *string
}

// KnowledgePointUpdate 是知识点的部分更新。
// 与资料更新不同，这里按字段是否出现判断，空字符串也会写入。
type KnowledgePointUpdate struct {
	Subject    *string
	PointName  *string
	Category   *string
	Importance *string
	Difficulty *string
	ExamPoints *string
	Content    *string
}

// KnowledgePointService 负责知识点的增删改查。
type KnowledgePointService struct {
	userRepo repository.UserRepository
	kpRepo   repository.KnowledgePointRepository
	tx       repository.Transactor
	now      func() time.Time
}

// NewKnowledgePointService 创建 KnowledgePointService 实例。
func NewKnowledgePointService(userRepo repository.UserRepository, kpRepo repository.KnowledgePointRepository, tx repository.Transactor) *KnowledgePointService {
	if userRepo == nil || kpRepo == nil || tx == nil {
		panic("repositories and Transactor cannot be nil for KnowledgePointService")
	}
	return &KnowledgePointService{userRepo: userRepo, kpRepo: kpRepo, tx: tx, now: time.Now}
}

// ListKnowledgePoints 返回用户的知识点，最新创建的在前。
func (s *KnowledgePointService) ListKnowledgePoints(ctx context.Context, userID uint, subject string) ([]domain.KnowledgePoint, error) {
	var points []domain.KnowledgePoint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := requireUser(ctx, s.userRepo, userID); err != nil {
			return err
		}
		var err error
		points, err = s.kpRepo.ListByUser(ctx, userID, subject)
		return err
	})
	if err != nil {
		return nil, s.mapError(err, logrus.WithFields(logrus.Fields{"user_id": userID, "subject": subject}), "Failed to list knowledge points")
	}
	return points, nil
}

// CreateKnowledgePoint 新建知识点，同一用户下知识点名称不可重复。
func (s *KnowledgePointService) CreateKnowledgePoint(ctx context.Context, in CreateKnowledgePointInput) (*domain.KnowledgePoint, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": in.UserID, "point_name": in.PointName})

	importance := domain.ImportanceMedium
	if in.Importance != "" {
		v, err := domain.ParseImportance(in.Importance)
		if err != nil {
			return nil, ErrInvalidImportance
		}
		importance = v
	}
	difficulty := domain.DifficultyMedium
	if in.Difficulty != "" {
		v, err := domain.ParseDifficulty(in.Difficulty)
		if err != nil {
			return nil, ErrInvalidDifficulty
		}
		difficulty = v
	}

	now := s.now()
	kp := &domain.KnowledgePoint{
		UserID:     in.UserID,
		Subject:    in.Subject,
		PointName:  in.PointName,
		Category:   in.Category,
		Importance: importance,
		Difficulty: difficulty,
		ExamPoints: in.ExamPoints,
		Content:    in.Content,
		CreateTime: now,
		UpdateTime: now,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := requireUser(ctx, s.userRepo, in.UserID); err != nil {
			return err
		}
		exists, err := s.kpRepo.ExistsByName(ctx, in.UserID, in.PointName)
		if err != nil {
			return err
		}
		if exists {
			return ErrKnowledgePointExists
		}
		return s.kpRepo.Create(ctx, kp)
	})
	if err != nil {
		return nil, s.mapError(err, logCtx, "Failed to create knowledge point")
	}

	logCtx.WithField("kp_id", kp.KPID).Info("Knowledge point created successfully")
	return kp, nil
}

// UpdateKnowledgePoint 覆盖请求中出现的字段，并总是刷新 update_time。
func (s *KnowledgePointService) UpdateKnowledgePoint(ctx context.Context, kpID uint, in KnowledgePointUpdate) (*domain.KnowledgePoint, error) {
	logCtx := logrus.WithField("kp_id", kpID)

	var importance *domain.Importance
	if in.Importance != nil {
		v, err := domain.ParseImportance(*in.Importance)
		if err != nil {
			return nil, ErrInvalidImportance
		}
		importance = &v
	}
	var difficulty *domain.Difficulty
	if in.Difficulty != nil {
		v, err := domain.ParseDifficulty(*in.Difficulty)
		if err != nil {
			return nil, ErrInvalidDifficulty
		}
		difficulty = &v
	}

	var kp *domain.KnowledgePoint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		kp, err = s.kpRepo.FindByID(ctx, kpID)
		if err != nil {
			return err
		}

		if in.Subject != nil {
			kp.Subject = *in.Subject
		}
		if in.PointName != nil {
			kp.PointName = *in.PointName
		}
		if in.Category != nil {
			kp.Category = *in.Category
		}
		if importance != nil {
			kp.Importance = *importance
		}
		if difficulty != nil {
			kp.Difficulty = *difficulty
		}
		if in.ExamPoints != nil {
			v := *in.ExamPoints
			kp.ExamPoints = &v
		}
		if in.Content != nil {
			v := *in.Content
			kp.Content = &v
		}
		kp.UpdateTime = s.now()

		return s.kpRepo.Save(ctx, kp)
	})
	if err != nil {
		return nil, s.mapError(err, logCtx, "Failed to update knowledge point")
	}

	logCtx.Info("Knowledge point updated successfully")
	return kp, nil
}

// DeleteKnowledgePoint 删除一条知识点。
func (s *KnowledgePointService) DeleteKnowledgePoint(ctx context.Context, kpID uint) error {
	logCtx := logrus.WithField("kp_id", kpID)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.kpRepo.Delete(ctx, kpID)
	})
	if err != nil {
		return s.mapError(err, logCtx, "Failed to delete knowledge point")
	}
	logCtx.Info("Knowledge point deleted successfully")
	return nil
}

// GetKnowledgePoint 返回一条知识点详情。
func (s *KnowledgePointService) GetKnowledgePoint(ctx context.Context, kpID uint) (*domain.KnowledgePoint, error) {
	var kp *domain.KnowledgePoint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		kp, err = s.kpRepo.FindByID(ctx, kpID)
		return err
	})
	if err != nil {
		return nil, s.mapError(err, logrus.WithField("kp_id", kpID), "Failed to get knowledge point")
	}
	return kp, nil
}

// mapError 把仓库层错误转换为业务错误，业务错误原样返回
func (s *KnowledgePointService) mapError(err error, logCtx *logrus.Entry, msg string) error {
	switch {
	case KindOf(err) != KindInternal:
		logCtx.WithError(err).Warn(msg)
		return err
	case errors.Is(err, repository.ErrKnowledgePointNotFound):
		logCtx.Warn(msg + ": not found")
		return ErrKnowledgePointNotFound
	case errors.Is(err, repository.ErrDuplicateEntry):
		logCtx.Warn(msg + ": duplicate point name")
		return ErrKnowledgePointExists
	default:
		logCtx.WithError(err).Error(msg)
		return ErrInternalServer
	}
}
