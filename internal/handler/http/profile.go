package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kano20041101/xuexizhushou/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AvatarFormField 是上传头像使用的表单字段名
const AvatarFormField = "avatar"

// ProfileHandler 处理个人资料相关请求
type ProfileHandler struct {
	profileService *service.ProfileService
	maxAvatarSize  int64
}

// NewProfileHandler 创建 ProfileHandler，maxAvatarSize <= 0 表示不限制头像大小
func NewProfileHandler(profileService *service.ProfileService, maxAvatarSize int64) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, maxAvatarSize: maxAvatarSize}
}

// GetProfile 返回用户资料，首次访问时自动创建空资料
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, newProfileResponse(profile))
}

// UpdateProfile 处理 multipart 表单形式的资料更新，avatar 字段为可选的头像文件
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	in := service.ProfileUpdate{
		Grade:               postForm(c, "grade"),
		PostgraduateSession: postForm(c, "postgraduate_session"),
		School:              postForm(c, "school"),
		Major:               postForm(c, "major"),
		TargetSchool:        postForm(c, "target_school"),
		TargetMajor:         postForm(c, "target_major"),
	}

	if raw := postForm(c, "target_score"); raw != nil && *raw != "" {
		score, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			logCtx.WithError(err).Warn("Handler.UpdateProfile: invalid target_score")
			ErrorResponse(c, http.StatusBadRequest, "Invalid target_score value")
			return
		}
		in.TargetScore = &score
	}

	fileHeader, err := c.FormFile(AvatarFormField)
	switch {
	case err == nil:
		if h.maxAvatarSize > 0 && fileHeader.Size > h.maxAvatarSize {
			ErrorResponse(c, http.StatusRequestEntityTooLarge, "Avatar file too large")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			logCtx.WithError(err).Error("Handler.UpdateProfile: failed to open uploaded avatar")
			ErrorResponse(c, http.StatusBadRequest, "Invalid avatar upload")
			return
		}
		defer file.Close()
		in.Avatar = &service.AvatarUpload{Filename: fileHeader.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// 没有上传头像
	default:
		logCtx.WithError(err).Warn("Handler.UpdateProfile: failed to parse multipart form")
		ErrorResponse(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	if err := h.profileService.UpdateProfile(c.Request.Context(), userID, in); err != nil {
		HandleServiceError(c, err)
		return
	}
	MessageResponse(c, http.StatusOK, "Profile updated successfully")
}

// postForm 返回表单字段值，字段不存在时返回 nil
func postForm(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}
