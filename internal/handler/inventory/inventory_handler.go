// Package inventory 提供库存管理相关的 HTTP Handler
package inventory

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/handler"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	inventoryService "github.com/dumeirei/hotel-ops-backend/internal/service/inventory"
)

// InventoryHandler 库存处理器
type InventoryHandler struct {
	inventoryService *inventoryService.InventoryService
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(inventorySvc *inventoryService.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventorySvc,
	}
}

// AddItem 新增库存物品
// @Summary 新增库存物品
// @Tags 库存
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body inventoryService.AddItemRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.InventoryItem}
// @Router /api/v1/inventory [post]
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req inventoryService.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.inventoryService.AddItem(c.Request.Context(), &req)
	handler.MustSucceed(c, err, item)
}

// GetItem 获取物品详情
// @Summary 获取物品详情
// @Tags 库存
// @Produce json
// @Security Bearer
// @Param id path int true "物品ID"
// @Success 200 {object} response.Response{data=models.InventoryItem}
// @Router /api/v1/inventory/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := handler.ParseID(c, "物品")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), id)
	handler.MustSucceed(c, err, item)
}

// ListItems 获取库存列表
// @Summary 获取库存列表
// @Tags 库存
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]models.InventoryItem}
// @Router /api/v1/inventory [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	p := handler.BindPagination(c)

	items, total, err := h.inventoryService.ListItems(c.Request.Context(), p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, items, total, p.Page, p.PageSize)
}

// QuantityRequest 数量请求
type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest 直接设置数量请求
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// UpdateQuantity 设置物品数量
// @Summary 设置物品数量
// @Tags 库存
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "物品ID"
// @Param request body UpdateQuantityRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.InventoryItem}
// @Router /api/v1/inventory/{id}/quantity [put]
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	id, ok := handler.ParseID(c, "物品")
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.inventoryService.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	handler.MustSucceed(c, err, item)
}

// ConsumeRequest 消耗请求
type ConsumeRequest struct {
	Quantity int     `json:"quantity" binding:"required,min=1"`
	UsedBy   *string `json:"used_by,omitempty"`
}

// Consume 消耗物品并记录用量
// @Summary 消耗物品并记录用量
// @Tags 库存
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "物品ID"
// @Param request body ConsumeRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.InventoryItem}
// @Router /api/v1/inventory/{id}/consume [post]
func (h *InventoryHandler) Consume(c *gin.Context) {
	id, ok := handler.ParseID(c, "物品")
	if !ok {
		return
	}

	var req ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.inventoryService.LogUsage(c.Request.Context(), id, req.Quantity, req.UsedBy)
	handler.MustSucceed(c, err, item)
}

// Restock 补充库存
// @Summary 补充库存
// @Tags 库存
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "物品ID"
// @Param request body QuantityRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.InventoryItem}
// @Router /api/v1/inventory/{id}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := handler.ParseID(c, "物品")
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.inventoryService.Restock(c.Request.Context(), id, req.Quantity)
	handler.MustSucceed(c, err, item)
}

// ListLowStock 获取低库存物品
// @Summary 获取低库存物品
// @Tags 库存
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=[]models.InventoryItem}
// @Router /api/v1/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	items, err := h.inventoryService.ListLowStock(c.Request.Context())
	handler.MustSucceed(c, err, items)
}

// UsageReport 获取用量汇总报表
// @Summary 获取用量汇总报表
// @Tags 库存
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=map[string]int}
// @Router /api/v1/inventory/usage-report [get]
func (h *InventoryHandler) UsageReport(c *gin.Context) {
	report, err := h.inventoryService.UsageReport(c.Request.Context())
	handler.MustSucceed(c, err, report)
}
