package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homes-http-service/config"
	"homes-http-service/services"
)

var (
	jwtService   services.InterfaceJWTService
	redisService *services.RedisService
)

// 会话cookie名，用于关联登录前的return-to槽位
const SessionCookieName = "homes_session"

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, redis *services.RedisService) {
	jwtService = services.NewJWTService(cfg)
	redisService = redis
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// EnsureSessionID 读取会话cookie，没有则生成并下发
func EnsureSessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookieName); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(SessionCookieName, id, int((24 * time.Hour).Seconds()), "/", "", false, true)
	return id
}

// denyUser 拒绝未认证的用户请求。把原始请求路径写入会话的return-to槽位，
// 单槽位后写覆盖，登录成功后消费一次即清除。
func denyUser(c *gin.Context, message string) {
	if redisService != nil {
		sessionID := EnsureSessionID(c)
		if err := redisService.StoreReturnTo(sessionID, c.Request.URL.RequestURI()); err != nil {
			config.Warning("保存return-to路径失败: %v", err)
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": message,
		"data": gin.H{
			"sign_in_url": "/api/auth/user/login",
		},
	})
	c.Abort()
}

// AuthenticateUser 验证注册用户身份
func AuthenticateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			denyUser(c, "需要注册或登录")
			return
		}

		claims, err := jwtService.ExtractClaims(extractToken(authHeader))
		if err != nil {
			denyUser(c, "Invalid token: "+err.Error())
			return
		}

		if claims.Role != services.RoleUser {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires user role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 存储claims到上下文
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AuthenticateAdmin 验证系统管理员权限
func AuthenticateAdmin() gin.HandlerFunc {
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

		// 检查是否是系统管理员
		if claims.Role != services.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires system admin role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// CurrentUserID 从上下文取当前登录用户ID，未登录返回0
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
