package middleware

import (
	"log"
	"strings"
	"time"

	"fullstack-go-server/domain/entity"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"

	"github.com/gin-gonic/gin"
)

// IdentityContext 身份上下文中间件
// 凭证缺失/无效/档案拉取失败一律降级为匿名，绝不中断请求 ——
// 公开过程要对匿名可用，受保护过程的拒绝由注册表统一处理
// 公开和受保护路由都挂这个中间件
func IdentityContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := resolveIdentity(c); identity != nil {
			c.Set(ContextKeyIdentity, identity)
		}
		c.Next()
	}
}

// resolveIdentity 从 Bearer Token 解析完整身份；任何一步失败返回 nil（匿名）
func resolveIdentity(c *gin.Context) *entity.Identity {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	// Clerk SDK 自动拉取公钥并验证签名、过期时间
	claims, err := jwt.Verify(c.Request.Context(), &jwt.VerifyParams{
		Token: token,
	})
	if err != nil {
		log.Printf("[Auth] Token 验证失败，按匿名处理: %v", err)
		return nil
	}

	// 拉取完整档案：首写建档需要邮箱/姓名/头像，joinedAt 需要账号创建时间
	usr, err := user.Get(c.Request.Context(), claims.Subject)
	if err != nil {
		log.Printf("[Auth] 拉取用户档案失败，按匿名处理: %v", err)
		return nil
	}

	return identityFromClerk(usr)
}

// identityFromClerk Clerk 用户对象 → 领域身份
func identityFromClerk(usr *clerk.User) *entity.Identity {
	// 邮箱优先取主邮箱，没有主邮箱标记时取第一个，全都没有则为空串
	email := ""
	if len(usr.EmailAddresses) > 0 {
		email = usr.EmailAddresses[0].EmailAddress
		if usr.PrimaryEmailAddressID != nil {
			for _, ea := range usr.EmailAddresses {
				if ea.ID == *usr.PrimaryEmailAddressID {
					email = ea.EmailAddress
					break
				}
			}
		}
	}

	return &entity.Identity{
		ID:        usr.ID,
		Email:     email,
		FirstName: strDeref(usr.FirstName),
		LastName:  strDeref(usr.LastName),
		ImageURL:  strDeref(usr.ImageURL),
		CreatedAt: time.UnixMilli(usr.CreatedAt),
	}
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
