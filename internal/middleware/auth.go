// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
)

// AuthConfig 认证配置
type AuthConfig struct {
	JWTManager *jwt.Manager
	Roles      []string // 允许访问的角色，空切片表示任意已登录员工
}

// 上下文键
const (
	ContextKeyStaffID  = "staff_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
	ContextKeyClaims   = "claims"
)

// Auth 认证中间件
func Auth(config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		claims, err := config.JWTManager.ParseToken(token)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, "登录已过期，请重新登录")
			} else {
				response.Unauthorized(c, "无效的令牌")
			}
			c.Abort()
			return
		}

		// 验证角色
		if len(config.Roles) > 0 && !roleAllowed(claims.Role, config.Roles) {
			response.Forbidden(c, "无权访问")
			c.Abort()
			return
		}

		// 设置上下文
		c.Set(ContextKeyStaffID, claims.StaffID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// OptionalAuth 可选认证中间件（不强制要求登录）
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			claims, err := jwtManager.ParseToken(token)
			if err == nil {
				c.Set(ContextKeyStaffID, claims.StaffID)
				c.Set(ContextKeyUsername, claims.Username)
				c.Set(ContextKeyRole, claims.Role)
				c.Set(ContextKeyClaims, claims)
			}
		}
		c.Next()
	}
}

// StaffAuth 员工认证中间件（任意角色）
func StaffAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return Auth(&AuthConfig{
		JWTManager: jwtManager,
	})
}

// AdminAuth 管理员认证中间件
func AdminAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return Auth(&AuthConfig{
		JWTManager: jwtManager,
		Roles:      []string{jwt.RoleAdmin},
	})
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// extractToken 从请求中提取令牌
func extractToken(c *gin.Context) string {
	// 优先从 Authorization 头获取
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// 其次从查询参数获取
	token := c.Query("token")
	if token != "" {
		return token
	}

	// 最后从 Cookie 获取
	token, _ = c.Cookie("token")
	return token
}

// GetStaffID 从上下文获取员工 ID
func GetStaffID(c *gin.Context) int64 {
	staffID, exists := c.Get(ContextKeyStaffID)
	if !exists {
		return 0
	}
	return staffID.(int64)
}

// GetUsername 从上下文获取用户名
func GetUsername(c *gin.Context) string {
	username, exists := c.Get(ContextKeyUsername)
	if !exists {
		return ""
	}
	return username.(string)
}

// GetRole 从上下文获取角色
func GetRole(c *gin.Context) string {
	role, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	return role.(string)
}

// GetClaims 从上下文获取完整的 Claims
func GetClaims(c *gin.Context) *jwt.Claims {
	claims, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	return claims.(*jwt.Claims)
}

// IsLoggedIn 判断是否已登录
func IsLoggedIn(c *gin.Context) bool {
	_, exists := c.Get(ContextKeyStaffID)
	return exists
}
