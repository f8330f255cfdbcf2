package http

import "github.com/gin-gonic/gin"

// Handlers 汇总路由需要的全部处理器
type Handlers struct {
	Health         *HealthHandler
	Auth           *AuthHandler
	Profile        *ProfileHandler
	KnowledgePoint *KnowledgePointHandler
}

// RegisterRoutes 把业务路由挂到 router 上
func RegisterRoutes(router gin.IRouter, h Handlers) {
	RegisterValidators()

	router.GET("/", h.Health.Check)

	router.GET("/user-login/", h.Auth.ListUsers)
	router.POST("/register", h.Auth.Register)
	router.POST("/login", h.Auth.Login)

	router.GET("/profile/:user_id", h.Profile.GetProfile)
	router.PUT("/profile/:user_id", h.Profile.UpdateProfile)

	kp := router.Group("/knowledge-points")
	{
		kp.POST("", h.KnowledgePoint.CreateKnowledgePoint)
		kp.GET("/:user_id", h.KnowledgePoint.ListKnowledgePoints)
		kp.GET("/detail/:kp_id", h.KnowledgePoint.GetKnowledgePoint)
		kp.PUT("/:kp_id", h.KnowledgePoint.UpdateKnowledgePoint)
		kp.DELETE("/:kp_id", h.KnowledgePoint.DeleteKnowledgePoint)
	}
}
