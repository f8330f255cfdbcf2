package http

import (
	"net/http"

	"github.com/kano20041101/xuexizhushou/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest 是注册和登录共用的请求体。
// Password 用指针，只要求字段存在，允许空字符串。
type CredentialsRequest struct {
	Username string  `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// UserIDResponse 是注册、登录成功的响应
type UserIDResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Register: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: username and password required")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, *req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserIDResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: username and password required")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, *req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserIDResponse{
		Message: "Login successful",
		UserID:  user.ID,
	})
}

// ListUsers 返回全部用户 (调试用，包含密码列)
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, users)
}
