package http

import (
	"time"

	"github.com/kano20041101/xuexizhushou/internal/domain"
)

// TimeLayout 是知识点时间戳的序列化格式 (无时区)
const TimeLayout = "2006-01-02T15:04:05"

// ProfileResponse 是个人资料的响应结构，未填写的字段输出 null
type ProfileResponse struct {
	ID                  uint     `json:"id"`
	Username            string   `json:"username"`
	Avatar              *string  `json:"avatar"`
	Grade               *string  `json:"grade"`
	PostgraduateSession *string  `json:"postgraduate_session"`
	School              *string  `json:"school"`
	Major               *string  `json:"major"`
	TargetSchool        *string  `json:"target_school"`
	TargetMajor         *string  `json:"target_major"`
	TargetScore         *float64 `json:"target_score"`
}

// KnowledgePointResponse 是知识点列表项与详情共用的结构
type KnowledgePointResponse struct {
	KPID       uint    `json:"kp_id"`
	ID         uint    `json:"id"`
	Subject    string  `json:"subject"`
	PointName  string  `json:"point_name"`
	Category   string  `json:"category"`
	Importance string  `json:"importance"`
	Difficulty string  `json:"difficulty"`
	ExamPoints *string `json:"exam_points"`
	Content    *string `json:"content"`
	CreateTime *string `json:"create_time"`
	UpdateTime *string `json:"update_time"`
}

func newProfileResponse(p *domain.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:                  p.ID,
		Username:            p.Username,
		PostgraduateSession: p.PostgraduateSession,
		School:              p.School,
		Major:               p.Major,
		TargetSchool:        p.TargetSchool,
		TargetMajor:         p.TargetMajor,
		TargetScore:         p.TargetScore,
	}
	// 头像以 URL 路径返回，数据库里存的是相对路径
	if p.Avatar != nil && *p.Avatar != "" {
		url := "/" + *p.Avatar
		resp.Avatar = &url
	}
	if p.Grade != nil {
		g := string(*p.Grade)
		resp.Grade = &g
	}
	return resp
}

func newKnowledgePointResponse(kp *domain.KnowledgePoint) KnowledgePointResponse {
	return KnowledgePointResponse{
		KPID:       kp.KPID,
		ID:         kp.UserID,
		Subject:    kp.Subject,
		PointName:  kp.PointName,
		Category:   kp.Category,
		Importance: string(kp.Importance),
		Difficulty: string(kp.Difficulty),
		ExamPoints: kp.ExamPoints,
		Content:    kp.Content,
		CreateTime: formatTime(kp.CreateTime),
		UpdateTime: formatTime(kp.UpdateTime),
	}
}

func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(TimeLayout)
	return &s
}
