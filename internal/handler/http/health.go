package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler 通过一次查询检查数据库连通性
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check 总是返回 200，数据库不可用时 status 为 error
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
		logrus.WithError(err).Warn("Health check: database unreachable")
		c.JSON(http.StatusOK, gin.H{
			"message": "数据库连接失败: " + err.Error(),
			"status":  "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "数据库连接成功",
		"status":  "healthy",
	})
}
