// Package auth 提供员工认证相关的 HTTP Handler
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/handler"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	authService "github.com/dumeirei/hotel-ops-backend/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *authService.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authSvc *authService.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authSvc,
	}
}

// Login 员工登录
// @Summary 员工登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.LoginRequest true "请求参数"
// @Success 200 {object} response.Response{data=authService.LoginResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req authService.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP())
	handler.MustSucceed(c, err, resp)
}

// Logout 员工登出
// @Summary 员工登出
// @Tags 认证
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	staffID, ok := handler.RequireStaffID(c)
	if !ok {
		return
	}

	handler.MustSucceed(c, h.authService.Logout(c.Request.Context(), staffID), nil)
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken 刷新令牌
// @Summary 刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "请求参数"
// @Success 200 {object} response.Response{data=jwt.TokenPair}
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	handler.MustSucceed(c, err, pair)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body authService.ChangePasswordRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	staffID, ok := handler.RequireStaffID(c)
	if !ok {
		return
	}

	var req authService.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	handler.MustSucceed(c, h.authService.ChangePassword(c.Request.Context(), staffID, &req), nil)
}

// GetProfile 获取当前员工信息
// @Summary 获取当前员工信息
// @Tags 认证
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=models.Staff}
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	staffID, ok := handler.RequireStaffID(c)
	if !ok {
		return
	}

	staff, err := h.authService.GetStaffByID(c.Request.Context(), staffID)
	handler.MustSucceed(c, err, staff)
}
