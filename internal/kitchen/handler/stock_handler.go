package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// StockHandler 库存处理器
type StockHandler struct {
	svc *service.StockService
}

// NewStockHandler 创建库存处理器
func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// List GET /stocks
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if len(stocks) == 0 {
		BadRequest(c, "No stocks found")
		return
	}
	Success(c, gin.H{"items": stocks})
}

// Create POST /stocks
func (h *StockHandler) Create(c *gin.Context) {
	var req service.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	stock, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	Created(c, stock)
}

// Update PATCH /stocks/:id
func (h *StockHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	stock, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err, "Stock not found")
		return
	}
	Success(c, stock)
}

type deleteStockBody struct {
	ID string `json:"id"`
}

// Delete DELETE /stocks
func (h *StockHandler) Delete(c *gin.Context) {
	var body deleteStockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		BadRequest(c, "Id field is required")
		return
	}
	stock, err := h.svc.Delete(c.Request.Context(), body.ID)
	if err != nil {
		handleServiceError(c, err, "Stock not found")
		return
	}
	SuccessMessage(c, fmt.Sprintf("Stock %s (%s) deleted", stock.Name, stock.ID), nil)
}

// CheckOff PATCH /stocks/check/:id
func (h *StockHandler) CheckOff(c *gin.Context) {
	id := c.Param("id")
	stock, err := h.svc.CheckOff(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Stock not found")
		return
	}
	Success(c, stock)
}

// Export GET /stocks/export
func (h *StockHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.Export(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", url.QueryEscape(filename)))

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}
