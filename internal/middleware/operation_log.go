package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/logger"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
)

// moduleAction 路由对应的操作日志归属
type moduleAction struct {
	Module string
	Action string
}

// moduleActionMap 按 "METHOD 路由模板" 索引需要记录的写操作
var moduleActionMap = map[string]moduleAction{
	"POST /api/v1/rooms":              {"room", "create"},
	"PUT /api/v1/rooms/:id/status":    {"room", "update_status"},
	"DELETE /api/v1/rooms/:id":        {"room", "delete"},
	"POST /api/v1/reservations":       {"reservation", "create"},
	"PUT /api/v1/reservations/:id":    {"reservation", "update"},
	"DELETE /api/v1/reservations/:id": {"reservation", "delete"},

	"POST /api/v1/reservations/:id/check-in":  {"reservation", "check_in"},
	"POST /api/v1/reservations/:id/check-out": {"reservation", "check_out"},
	"POST /api/v1/reservations/:id/cancel":    {"reservation", "cancel"},

	"POST /api/v1/bills": {"billing", "generate"},

	"POST /api/v1/inventory":             {"inventory", "create"},
	"PUT /api/v1/inventory/:id/quantity": {"inventory", "update_quantity"},
	"POST /api/v1/inventory/:id/consume": {"inventory", "consume"},
	"POST /api/v1/inventory/:id/restock": {"inventory", "restock"},

	"POST /api/v1/housekeeping/tasks":           {"housekeeping", "create"},
	"PUT /api/v1/housekeeping/tasks/:id/status": {"housekeeping", "update_status"},

	"POST /api/v1/staff":           {"staff", "create"},
	"PUT /api/v1/staff/:id/status": {"staff", "update_status"},
	"PUT /api/v1/auth/password":    {"staff", "change_password"},
}

// OperationLog 记录员工写操作的审计日志
func OperationLog(db *gorm.DB) gin.HandlerFunc {
	repo := repository.NewOperationLogRepository(db)

	return func(c *gin.Context) {
		c.Next()

		// 仅记录成功的写操作
		if c.Writer.Status() >= 400 {
			return
		}
		ma, ok := moduleActionMap[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}
		staffID := GetStaffID(c)
		if staffID == 0 {
			return
		}

		entry := &models.OperationLog{
			StaffID: staffID,
			Module:  ma.Module,
			Action:  ma.Action,
		}
		if idStr := c.Param("id"); idStr != "" {
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				entry.TargetID = &id
				targetType := ma.Module
				entry.TargetType = &targetType
			}
		}
		if ip := c.ClientIP(); ip != "" {
			entry.IP = ip
		}
		if ua := c.Request.UserAgent(); ua != "" {
			entry.UserAgent = &ua
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := repo.Create(ctx, entry); err != nil {
				logger.Warn("操作日志写入失败",
					logger.StaffID(staffID),
					logger.Module(ma.Module),
					logger.Action(ma.Action),
				)
			}
		}()
	}
}
