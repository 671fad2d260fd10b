package middleware

import (
	"net/http"
	"strings"

	"estate-management-service/config"
	"estate-management-service/services"

	"github.com/gin-gonic/gin"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Authenticate 验证登录用户，将会话信息写入上下文
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Authorization header is required",
				"data":    nil,
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(extractToken(authHeader))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid token: " + err.Error(),
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 存储会话到上下文
		session := &services.Session{
			UserID:         claims.UserID,
			OrganizationID: claims.OrganizationID,
			Role:           claims.Role,
			Email:          claims.Email,
		}
		c.Set("session", session)
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles 限定接口只允许指定角色访问，放在Authenticate之后使用
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Authentication required",
				"data":    nil,
			})
			c.Abort()
			return
		}

		if !allowed[session.Role] {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions",
				"data":    nil,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CronAuth 校验定时任务接口的Bearer密钥。
// 未配置CRON_SECRET时直接放行，便于本地调试。
func CronAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.CronSecret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if extractToken(authHeader) != cfg.CronSecret {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid cron secret",
				"data":    nil,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession 从上下文取出会话，不存在时返回nil
func GetSession(c *gin.Context) *services.Session {
	value, exists := c.Get("session")
	if !exists {
		return nil
	}
	session, ok := value.(*services.Session)
	if !ok {
		return nil
	}
	return session
}
