package http

import (
	"net/http"

	"github.com/kano20041101/xuexizhushou/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// KnowledgePointHandler 处理知识点的增删改查
type KnowledgePointHandler struct {
	kpService *service.KnowledgePointService
}

func NewKnowledgePointHandler(kpService *service.KnowledgePointService) *KnowledgePointHandler {
	return &KnowledgePointHandler{kpService: kpService}
}

// CreateKnowledgePointRequest 新建知识点的请求体，id 为归属用户
type CreateKnowledgePointRequest struct {
	ID         uint    `json:"id" binding:"required"`
	Subject    string  `json:"subject" binding:"required"`
	PointName  string  `json:"point_name" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	Importance string  `json:"importance" binding:"omitempty,importance"`
	Difficulty string  `json:"difficulty" binding:"omitempty,difficulty"`
	ExamPoints *string `json:"exam_points"`
	Content    *string `json:"content"`
}

// UpdateKnowledgePointRequest 只覆盖请求中出现的字段
type UpdateKnowledgePointRequest struct {
	Subject    *string `json:"subject"`
	PointName  *string `json:"point_name"`
	Category   *string `json:"category"`
	Importance *string `json:"importance" binding:"omitempty,importance"`
	Difficulty *string `json:"difficulty" binding:"omitempty,difficulty"`
	ExamPoints *string `json:"exam_points"`
	Content    *string `json:"content"`
}

// ListKnowledgePoints 返回用户的知识点，可选 ?subject= 过滤
func (h *KnowledgePointHandler) ListKnowledgePoints(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	points, err := h.kpService.ListKnowledgePoints(c.Request.Context(), userID, c.Query("subject"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	resp := make([]KnowledgePointResponse, 0, len(points))
	for i := range points {
		resp = append(resp, newKnowledgePointResponse(&points[i]))
	}
	SuccessResponse(c, http.StatusOK, resp)
}

func (h *KnowledgePointHandler) CreateKnowledgePoint(c *gin.Context) {
	var req CreateKnowledgePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateKnowledgePoint: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	kp, err := h.kpService.CreateKnowledgePoint(c.Request.Context(), service.CreateKnowledgePointInput{
		UserID:     req.ID,
		Subject:    req.Subject,
		PointName:  req.PointName,
		Category:   req.Category,
		Importance: req.Importance,
		Difficulty: req.Difficulty,
		ExamPoints: req.ExamPoints,
		Content:    req.Content,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Knowledge point created successfully",
		"kp_id":   kp.KPID,
	})
}

func (h *KnowledgePointHandler) UpdateKnowledgePoint(c *gin.Context) {
	kpID, ok := parseIDParam(c, "kp_id")
	if !ok {
		return
	}

	var req UpdateKnowledgePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).WithField("kp_id", kpID).Warn("Handler.UpdateKnowledgePoint: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	_, err := h.kpService.UpdateKnowledgePoint(c.Request.Context(), kpID, service.KnowledgePointUpdate{
		Subject:    req.Subject,
		PointName:  req.PointName,
		Category:   req.Category,
		Importance: req.Importance,
		Difficulty: req.Difficulty,
		ExamPoints: req.ExamPoints,
		Content:    req.Content,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	MessageResponse(c, http.StatusOK, "Knowledge point updated successfully")
}

func (h *KnowledgePointHandler) DeleteKnowledgePoint(c *gin.Context) {
	kpID, ok := parseIDParam(c, "kp_id")
	if !ok {
		return
	}

	if err := h.kpService.DeleteKnowledgePoint(c.Request.Context(), kpID); err != nil {
		HandleServiceError(c, err)
		return
	}
	MessageResponse(c, http.StatusOK, "Knowledge point deleted successfully")
}

// GetKnowledgePoint 返回单个知识点详情
func (h *KnowledgePointHandler) GetKnowledgePoint(c *gin.Context) {
	kpID, ok := parseIDParam(c, "kp_id")
	if !ok {
		return
	}

	kp, err := h.kpService.GetKnowledgePoint(c.Request.Context(), kpID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, newKnowledgePointResponse(kp))
}
