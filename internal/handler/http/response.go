package http

import "github.com/gin-gonic/gin"

// ErrorResponse 输出 {"detail": message}，与前端读取错误信息的方式一致
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"detail": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// MessageResponse 输出只包含 message 的成功响应
func MessageResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
