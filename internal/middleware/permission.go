// Package middleware 提供 HTTP 中间件
package middleware

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
)

// PermissionChecker 权限检查器接口
type PermissionChecker interface {
	HasPermission(roleCode, permissionCode string) bool
	HasAnyPermission(roleCode string, permissionCodes []string) bool
	HasAllPermissions(roleCode string, permissionCodes []string) bool
}

// PermissionConfig 权限配置
type PermissionConfig struct {
	Checker PermissionChecker
}

// RequirePermission 要求指定权限
func RequirePermission(checker PermissionChecker, permissionCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !checker.HasPermission(role, permissionCode) {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAnyPermission 要求任一权限
func RequireAnyPermission(checker PermissionChecker, permissionCodes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !checker.HasAnyPermission(role, permissionCodes) {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAllPermissions 要求全部权限
func RequireAllPermissions(checker PermissionChecker, permissionCodes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !checker.HasAllPermissions(role, permissionCodes) {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRoles 要求指定角色
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{})
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if _, ok := roleSet[role]; !ok {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin 要求管理员权限
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(jwt.RoleAdmin)
}

// PermissionCodes 预定义权限码
const (
	// 房间管理
	PermissionRoomList   = "room:list"
	PermissionRoomCreate = "room:create"
	PermissionRoomUpdate = "room:update"
	PermissionRoomDelete = "room:delete"

	// 预订管理
	PermissionReservationList     = "reservation:list"
	PermissionReservationCreate   = "reservation:create"
	PermissionReservationCheckIn  = "reservation:check_in"
	PermissionReservationCheckOut = "reservation:check_out"
	PermissionReservationCancel   = "reservation:cancel"

	// 账单管理
	PermissionBillingList   = "billing:list"
	PermissionBillingCreate = "billing:create"
	PermissionBillingCharge = "billing:charge"
	PermissionBillingSettle = "billing:settle"

	// 库存管理
	PermissionInventoryList    = "inventory:list"
	PermissionInventoryCreate  = "inventory:create"
	PermissionInventoryConsume = "inventory:consume"
	PermissionInventoryRestock = "inventory:restock"

	// 清洁管理
	PermissionHousekeepingList   = "housekeeping:list"
	PermissionHousekeepingCreate = "housekeeping:create"
	PermissionHousekeepingUpdate = "housekeeping:update"

	// 员工管理
	PermissionStaffList   = "staff:list"
	PermissionStaffCreate = "staff:create"
	PermissionStaffUpdate = "staff:update"
	PermissionStaffDelete = "staff:delete"

	// 系统管理
	PermissionSystemConfig = "system:config"
	PermissionSystemLog    = "system:log"
)

// rolePermissions 角色权限映射
var rolePermissions = map[string]map[string]struct{}{
	jwt.RoleAdmin: permissionSet(
		PermissionRoomList, PermissionRoomCreate, PermissionRoomUpdate, PermissionRoomDelete,
		PermissionReservationList, PermissionReservationCreate, PermissionReservationCheckIn,
		PermissionReservationCheckOut, PermissionReservationCancel,
		PermissionBillingList, PermissionBillingCreate, PermissionBillingCharge, PermissionBillingSettle,
		PermissionInventoryList, PermissionInventoryCreate, PermissionInventoryConsume, PermissionInventoryRestock,
		PermissionHousekeepingList, PermissionHousekeepingCreate, PermissionHousekeepingUpdate,
		PermissionStaffList, PermissionStaffCreate, PermissionStaffUpdate, PermissionStaffDelete,
		PermissionSystemConfig, PermissionSystemLog,
	),
	jwt.RoleReceptionist: permissionSet(
		PermissionRoomList, PermissionRoomUpdate,
		PermissionReservationList, PermissionReservationCreate, PermissionReservationCheckIn,
		PermissionReservationCheckOut, PermissionReservationCancel,
		PermissionBillingList, PermissionBillingCreate, PermissionBillingCharge, PermissionBillingSettle,
		PermissionHousekeepingList, PermissionHousekeepingCreate,
	),
	jwt.RoleHousekeeping: permissionSet(
		PermissionRoomList,
		PermissionInventoryList, PermissionInventoryConsume,
		PermissionHousekeepingList, PermissionHousekeepingCreate, PermissionHousekeepingUpdate,
	),
}

// PermissionsForRole 获取角色的全部权限码
func PermissionsForRole(roleCode string) []string {
	perms, ok := rolePermissions[roleCode]
	if !ok {
		return nil
	}
	codes := make([]string, 0, len(perms))
	for code := range perms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func permissionSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// RoleChecker 基于静态角色映射的权限检查器
type RoleChecker struct{}

// NewRoleChecker 创建权限检查器
func NewRoleChecker() *RoleChecker {
	return &RoleChecker{}
}

// HasPermission 检查角色是否拥有指定权限
func (rc *RoleChecker) HasPermission(roleCode, permissionCode string) bool {
	perms, ok := rolePermissions[roleCode]
	if !ok {
		return false
	}
	_, ok = perms[permissionCode]
	return ok
}

// HasAnyPermission 检查角色是否拥有任一权限
func (rc *RoleChecker) HasAnyPermission(roleCode string, permissionCodes []string) bool {
	for _, code := range permissionCodes {
		if rc.HasPermission(roleCode, code) {
			return true
		}
	}
	return false
}

// HasAllPermissions 检查角色是否拥有全部权限
func (rc *RoleChecker) HasAllPermissions(roleCode string, permissionCodes []string) bool {
	for _, code := range permissionCodes {
		if !rc.HasPermission(roleCode, code) {
			return false
		}
	}
	return true
}
