// Package reservation 提供预订管理相关的 HTTP Handler
package reservation

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/handler"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	reservationService "github.com/dumeirei/hotel-ops-backend/internal/service/reservation"
)

// ReservationHandler 预订处理器
type ReservationHandler struct {
	reservationService *reservationService.ReservationService
}

// NewReservationHandler 创建预订处理器
func NewReservationHandler(reservationSvc *reservationService.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationSvc,
	}
}

// CreateReservation 创建预订
// @Summary 创建预订
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body reservationService.CreateReservationRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reservationService.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), &req)
	handler.MustSucceed(c, err, reservation)
}

// GetReservation 获取预订详情
// @Summary 获取预订详情
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetByID(c.Request.Context(), id)
	handler.MustSucceed(c, err, reservation)
}

// GetByGuest 根据客人姓名获取最新预订
// @Summary 根据客人姓名获取最新预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param guest_name path string true "客人姓名"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/guest/{guest_name} [get]
func (h *ReservationHandler) GetByGuest(c *gin.Context) {
	guestName := c.Param("guest_name")
	if guestName == "" {
		response.BadRequest(c, "客人姓名不能为空")
		return
	}

	reservation, err := h.reservationService.GetByGuest(c.Request.Context(), guestName)
	handler.MustSucceed(c, err, reservation)
}

// ListReservations 获取预订列表
// @Summary 获取预订列表
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param guest_name query string false "客人姓名"
// @Param group_name query string false "团体名称"
// @Param status query string false "状态"
// @Param room_type query string false "房型"
// @Success 200 {object} response.Response{data=[]models.Reservation}
// @Router /api/v1/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := make(map[string]interface{})
	for _, key := range []string{"guest_name", "group_name", "status", "room_type"} {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}
	start, end, ok := handler.ParseQueryDateRange(c)
	if !ok {
		return
	}
	if start != nil {
		filters["check_in_from"] = *start
	}
	if end != nil {
		filters["check_in_to"] = *end
	}

	reservations, total, err := h.reservationService.List(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, reservations, total, p.Page, p.PageSize)
}

// ListGroupMembers 获取团体成员预订
// @Summary 获取团体成员预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param group_name path string true "团体名称"
// @Success 200 {object} response.Response{data=[]models.Reservation}
// @Router /api/v1/reservations/group/{group_name} [get]
func (h *ReservationHandler) ListGroupMembers(c *gin.Context) {
	groupName := c.Param("group_name")
	if groupName == "" {
		response.BadRequest(c, "团体名称不能为空")
		return
	}

	reservations, err := h.reservationService.ListByGroup(c.Request.Context(), groupName)
	handler.MustSucceed(c, err, reservations)
}

// ListGuestNames 获取全部客人姓名
// @Summary 获取全部客人姓名
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param scope query string false "为 individual 时仅返回散客"
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reservations/guests [get]
func (h *ReservationHandler) ListGuestNames(c *gin.Context) {
	var (
		names []string
		err   error
	)
	if c.Query("scope") == "individual" {
		names, err = h.reservationService.ListIndividualGuestNames(c.Request.Context())
	} else {
		names, err = h.reservationService.ListGuestNames(c.Request.Context())
	}
	handler.MustSucceed(c, err, names)
}

// ListGroupNames 获取全部团体名称
// @Summary 获取全部团体名称
// @Tags 预订
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reservations/groups [get]
func (h *ReservationHandler) ListGroupNames(c *gin.Context) {
	names, err := h.reservationService.ListGroupNames(c.Request.Context())
	handler.MustSucceed(c, err, names)
}

// UpdateReservation 更新预订
// @Summary 更新预订
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Param request body reservationService.UpdateReservationRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	var req reservationService.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	reservation, err := h.reservationService.Update(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, reservation)
}

// DeleteReservation 删除预订
// @Summary 删除预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.reservationService.Delete(c.Request.Context(), id), nil)
}

// CheckInRequest 办理入住请求
type CheckInRequest struct {
	RoomID int64 `json:"room_id"`
}

// CheckIn 办理入住
// @Summary 办理入住
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Param request body CheckInRequest false "请求参数，room_id 为空时自动分配"
// @Success 200 {object} response.Response{data=reservationService.CheckInResult}
// @Router /api/v1/reservations/{id}/check-in [post]
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	var req CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "参数错误")
			return
		}
	}

	result, err := h.reservationService.CheckIn(c.Request.Context(), id, req.RoomID)
	handler.MustSucceed(c, err, result)
}

// CheckOut 办理退房
// @Summary 办理退房
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id}/check-out [post]
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.CheckOut(c.Request.Context(), id)
	handler.MustSucceed(c, err, reservation)
}

// Cancel 取消预订
// @Summary 取消预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Cancel(c.Request.Context(), id)
	handler.MustSucceed(c, err, reservation)
}
