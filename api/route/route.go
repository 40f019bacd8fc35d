package route

import (
	"fullstack-go-server/api/controller"
	"fullstack-go-server/api/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies 路由依赖注入结构
type Dependencies struct {
	RPCController     *controller.RPCController
	WebhookController *controller.WebhookController
}

// Setup 配置所有路由
func Setup(router *gin.Engine, deps *Dependencies) {
	// --- 公开路由 ---

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fullstack-go-server",
		})
	})

	// Clerk Webhook（使用 Svix 签名验证，不使用 JWT）
	router.POST("/webhook/clerk", deps.WebhookController.HandleClerkWebhook)

	// --- 过程调用路由 ---
	// 公开和受保护过程走同一个端点：
	// 身份中间件只负责解析（失败降级为匿名），拒绝匿名由注册表按过程级别决定
	api := router.Group("/api")
	api.Use(middleware.IdentityContext())
	{
		api.POST("/rpc/:procedure", deps.RPCController.Invoke)
	}
}
