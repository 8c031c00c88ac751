package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// MenuHandler 菜单处理器
type MenuHandler struct {
	svc *service.MenuService
}

// NewMenuHandler 创建菜单处理器
func NewMenuHandler(svc *service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// List GET /menus
func (h *MenuHandler) List(c *gin.Context) {
	menus, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if len(menus) == 0 {
		BadRequest(c, "No menus found")
		return
	}
	Success(c, gin.H{"items": menus})
}

// Create POST /menus
func (h *MenuHandler) Create(c *gin.Context) {
	var req service.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	menu, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "Recipe not found")
		return
	}
	Created(c, menu)
}

type updateMenuBody struct {
	ID string `json:"id"`
	service.UpdateMenuRequest
}

// Update PATCH /menus
func (h *MenuHandler) Update(c *gin.Context) {
	var body updateMenuBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		BadRequest(c, "Id field is required")
		return
	}
	menu, err := h.svc.Update(c.Request.Context(), body.ID, &body.UpdateMenuRequest)
	if err != nil {
		handleServiceError(c, err, "Menu not found")
		return
	}
	Success(c, menu)
}

type deleteMenuBody struct {
	ID string `json:"id"`
}

// Delete DELETE /menus
func (h *MenuHandler) Delete(c *gin.Context) {
	var body deleteMenuBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		BadRequest(c, "Id field is required")
		return
	}
	menu, err := h.svc.Delete(c.Request.Context(), body.ID)
	if err != nil {
		handleServiceError(c, err, "Menu not found")
		return
	}
	SuccessMessage(c, fmt.Sprintf("Menu %s (%s) deleted", menu.Name, menu.ID), nil)
}
