package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// WeeklyMenuHandler 周菜单处理器
type WeeklyMenuHandler struct {
	svc *service.WeeklyMenuService
}

// NewWeeklyMenuHandler 创建周菜单处理器
func NewWeeklyMenuHandler(svc *service.WeeklyMenuService) *WeeklyMenuHandler {
	return &WeeklyMenuHandler{svc: svc}
}

// List GET /weeklymenus
func (h *WeeklyMenuHandler) List(c *gin.Context) {
	wms, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if len(wms) == 0 {
		BadRequest(c, "No weekly menus found")
		return
	}
	Success(c, gin.H{"items": wms})
}

// Create POST /weeklymenus
func (h *WeeklyMenuHandler) Create(c *gin.Context) {
	var req service.CreateWeeklyMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	wm, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "Menu not found")
		return
	}
	Created(c, wm)
}

// Update PATCH /weeklymenus/:id
func (h *WeeklyMenuHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateWeeklyMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	wm, err := h.svc.Update(c.Request.Context(), id, GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	Success(c, wm)
}

// Delete DELETE /weeklymenus/:id
func (h *WeeklyMenuHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id, GetUserID(c)); err != nil {
		handleServiceError(c, err, "")
		return
	}
	SuccessMessage(c, "Weekly menu "+id+" deleted", nil)
}

// StockCheck POST /weeklymenus/:id/stock-check
func (h *WeeklyMenuHandler) StockCheck(c *gin.Context) {
	id := c.Param("id")
	result, err := h.svc.CheckStockAvailability(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	Success(c, result)
}
