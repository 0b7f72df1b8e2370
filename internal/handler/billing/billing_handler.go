// Package billing 提供账单管理相关的 HTTP Handler
package billing

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/handler"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	billingService "github.com/dumeirei/hotel-ops-backend/internal/service/billing"
)

// BillingHandler 账单处理器
type BillingHandler struct {
	billingService *billingService.BillingService
}

// NewBillingHandler 创建账单处理器
func NewBillingHandler(billingSvc *billingService.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingSvc,
	}
}

// BillRequest 账单生成与预览请求
type BillRequest struct {
	SubjectType string   `json:"subject_type" binding:"required,oneof=guest group"`
	SubjectName string   `json:"subject_name" binding:"required,max=100"`
	Services    []string `json:"services,omitempty"`
	DiscountPct float64  `json:"discount_pct"`
}

// PreviewBill 预览账单金额
// @Summary 预览账单金额
// @Tags 账单
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body BillRequest true "请求参数"
// @Success 200 {object} response.Response{data=billingService.BillBreakdown}
// @Router /api/v1/bills/preview [post]
func (h *BillingHandler) PreviewBill(c *gin.Context) {
	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	var (
		breakdown *billingService.BillBreakdown
		err       error
	)
	if req.SubjectType == models.BillSubjectGroup {
		breakdown, err = h.billingService.PreviewGroup(c.Request.Context(), req.SubjectName, req.Services, req.DiscountPct)
	} else {
		breakdown, err = h.billingService.PreviewGuest(c.Request.Context(), req.SubjectName, req.Services, req.DiscountPct)
	}
	handler.MustSucceed(c, err, breakdown)
}

// GenerateBill 生成账单
// @Summary 生成账单
// @Tags 账单
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body BillRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Bill}
// @Router /api/v1/bills [post]
func (h *BillingHandler) GenerateBill(c *gin.Context) {
	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	var (
		bill *models.Bill
		err  error
	)
	if req.SubjectType == models.BillSubjectGroup {
		bill, err = h.billingService.GenerateGroup(c.Request.Context(), req.SubjectName, req.Services, req.DiscountPct)
	} else {
		bill, err = h.billingService.GenerateGuest(c.Request.Context(), req.SubjectName, req.Services, req.DiscountPct)
	}
	handler.MustSucceed(c, err, bill)
}

// GetBill 获取账单详情
// @Summary 获取账单详情
// @Tags 账单
// @Produce json
// @Security Bearer
// @Param id path int true "账单ID"
// @Success 200 {object} response.Response{data=models.Bill}
// @Router /api/v1/bills/{id} [get]
func (h *BillingHandler) GetBill(c *gin.Context) {
	id, ok := handler.ParseID(c, "账单")
	if !ok {
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	handler.MustSucceed(c, err, bill)
}

// ListBills 获取账单列表
// @Summary 获取账单列表
// @Tags 账单
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param subject_type query string false "结算主体类型"
// @Param subject_name query string false "结算主体名称"
// @Success 200 {object} response.Response{data=[]models.Bill}
// @Router /api/v1/bills [get]
func (h *BillingHandler) ListBills(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := make(map[string]interface{})
	if subjectType := c.Query("subject_type"); subjectType != "" {
		filters["subject_type"] = subjectType
	}
	if subjectName := c.Query("subject_name"); subjectName != "" {
		filters["subject_name"] = subjectName
	}

	bills, total, err := h.billingService.ListBills(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, bills, total, p.Page, p.PageSize)
}

// SplitGroup 团体消费人均分摊
// @Summary 团体消费人均分摊
// @Tags 账单
// @Produce json
// @Security Bearer
// @Param group_name path string true "团体名称"
// @Param services query []string false "附加服务" collectionFormat(multi)
// @Param discount_pct query number false "折扣百分比"
// @Success 200 {object} response.Response{data=billingService.SplitResult}
// @Router /api/v1/bills/group/{group_name}/split [get]
func (h *BillingHandler) SplitGroup(c *gin.Context) {
	groupName := c.Param("group_name")
	if groupName == "" {
		response.BadRequest(c, "团体名称不能为空")
		return
	}

	var discountPct float64
	if raw := c.Query("discount_pct"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "折扣比例格式错误")
			return
		}
		discountPct = v
	}

	result, err := h.billingService.SplitGroup(c.Request.Context(), groupName, c.QueryArray("services"), discountPct)
	handler.MustSucceed(c, err, result)
}

// GuestServiceHistory 获取客人消费的服务明细
// @Summary 获取客人消费的服务明细
// @Tags 账单
// @Produce json
// @Security Bearer
// @Param guest_name path string true "客人姓名"
// @Success 200 {object} response.Response{data=[]models.BillLine}
// @Router /api/v1/bills/guest/{guest_name}/services [get]
func (h *BillingHandler) GuestServiceHistory(c *gin.Context) {
	guestName := c.Param("guest_name")
	if guestName == "" {
		response.BadRequest(c, "客人姓名不能为空")
		return
	}

	lines, err := h.billingService.GuestServiceHistory(c.Request.Context(), guestName)
	handler.MustSucceed(c, err, lines)
}

// ListServiceCatalog 获取增值服务价目表
// @Summary 获取增值服务价目表
// @Tags 账单
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=[]pricing.ServicePrice}
// @Router /api/v1/bills/services [get]
func (h *BillingHandler) ListServiceCatalog(c *gin.Context) {
	handler.MustSucceed(c, nil, h.billingService.ServiceCatalog())
}
