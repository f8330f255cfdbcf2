package http

import (
	"net/http"
	"strconv"

	"github.com/kano20041101/xuexizhushou/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError 按业务错误的分类写出响应
func HandleServiceError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case service.KindConflict, service.KindValidation:
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case service.KindUnauthorized:
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// parseIDParam 解析路径中的数字 ID，失败时已写出 400 响应并返回 false
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+name+": "+raw)
		return 0, false
	}
	return uint(id), true
}
