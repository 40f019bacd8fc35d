package controller

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"fullstack-go-server/domain/entity"
	"fullstack-go-server/usecase"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
)

// WebhookController 处理 Clerk Webhook 回调
// ⚠️ 本地 User 行是惰性创建的（首次认证写操作才落库）：
// Webhook 只负责刷新已存在行的档案字段，绝不因注册事件插入新行
type WebhookController struct {
	userUseCase   *usecase.UserUseCase
	webhookSecret string
}

// NewWebhookController 构造函数
func NewWebhookController(userUseCase *usecase.UserUseCase, webhookSecret string) *WebhookController {
	return &WebhookController{
		userUseCase:   userUseCase,
		webhookSecret: webhookSecret,
	}
}

// ClerkWebhookPayload Clerk Webhook 事件结构
type ClerkWebhookPayload struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ClerkUserData Clerk 用户数据结构
type ClerkUserData struct {
	ID             string `json:"id"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// HandleClerkWebhook 处理 Clerk Webhook 回调
// POST /webhook/clerk
// 处理 user.updated（刷新已有行）；user.created / user.deleted 只记日志
func (wc *WebhookController) HandleClerkWebhook(c *gin.Context) {
	// 1. 读取请求体
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[Webhook] ❌ 读取请求体失败: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取请求体"})
		return
	}

	// 2. 验证 Webhook 签名（使用 Svix SDK）
	if wc.webhookSecret != "" {
		wh, err := svix.NewWebhook(wc.webhookSecret)
		if err != nil {
			log.Printf("[Webhook] ❌ 初始化 Webhook 验证器失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook 配置错误"})
			return
		}

		headers := http.Header{}
		headers.Set("svix-id", c.GetHeader("svix-id"))
		headers.Set("svix-timestamp", c.GetHeader("svix-timestamp"))
		headers.Set("svix-signature", c.GetHeader("svix-signature"))

		if err := wh.Verify(body, headers); err != nil {
			log.Printf("[Webhook] ❌ 签名验证失败: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "签名验证失败"})
			return
		}
	} else {
		log.Println("[Webhook] ⚠️ 未配置 CLERK_WEBHOOK_SECRET，跳过签名验证（仅限开发环境）")
	}

	// 3. 解析事件
	var payload ClerkWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[Webhook] ❌ 解析 Webhook 失败: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 JSON 格式"})
		return
	}

	log.Printf("[Webhook] 📥 收到事件: %s", payload.Type)

	// 4. 根据事件类型处理
	switch payload.Type {
	case "user.updated":
		wc.handleUserUpdated(payload.Data)
	case "user.created":
		// 惰性创建：注册事件不落库，首次认证写操作时才建行
		log.Println("[Webhook] ℹ️ user.created 已确认，本地行等待首次写操作时惰性创建")
	case "user.deleted":
		wc.handleUserDeleted(payload.Data)
	default:
		log.Printf("[Webhook] ℹ️ 忽略事件: %s", payload.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleUserUpdated 刷新已存在行的档案字段
func (wc *WebhookController) handleUserUpdated(data json.RawMessage) {
	var userData ClerkUserData
	if err := json.Unmarshal(data, &userData); err != nil {
		log.Printf("[Webhook] ❌ 解析用户数据失败: %v", err)
		return
	}

	// 提取邮箱（取第一个）
	email := ""
	if len(userData.EmailAddresses) > 0 {
		email = userData.EmailAddresses[0].EmailAddress
	}

	updated, err := wc.userUseCase.SyncProfile(&entity.User{
		ID:        userData.ID,
		Email:     email,
		FirstName: userData.FirstName,
		LastName:  userData.LastName,
		ImageURL:  userData.ImageURL,
	})
	if err != nil {
		log.Printf("[Webhook] ❌ 用户档案同步失败: %v", err)
		return
	}

	if updated {
		log.Printf("[Webhook] ✅ 用户档案已刷新: %s (%s)", userData.ID, email)
	} else {
		log.Printf("[Webhook] ℹ️ 用户 %s 本地尚未建行，跳过（保持惰性创建）", userData.ID)
	}
}

// handleUserDeleted 处理用户删除事件
// 本层没有删除路径，帖子的孤儿策略也未定义，只记日志
func (wc *WebhookController) handleUserDeleted(data json.RawMessage) {
	var userData struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &userData); err != nil {
		log.Printf("[Webhook] ❌ 解析删除事件数据失败: %v", err)
		return
	}

	log.Printf("[Webhook] ℹ️ 用户删除事件: %s（本层无删除路径，不处理）", userData.ID)
}
