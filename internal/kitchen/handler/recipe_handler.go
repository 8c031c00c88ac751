package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// RecipeHandler 菜谱处理器
type RecipeHandler struct {
	svc *service.RecipeService
}

// NewRecipeHandler 创建菜谱处理器
func NewRecipeHandler(svc *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

// List GET /recipes
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if len(recipes) == 0 {
		BadRequest(c, "No recipes found")
		return
	}
	Success(c, gin.H{"items": recipes})
}

// Create POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req service.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	recipe, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "Stock not found")
		return
	}
	Created(c, recipe)
}

type updateRecipeBody struct {
	ID string `json:"id"`
	service.UpdateRecipeRequest
}

// Update PATCH /recipes
func (h *RecipeHandler) Update(c *gin.Context) {
	var body updateRecipeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		BadRequest(c, "Id field is required")
		return
	}
	recipe, err := h.svc.Update(c.Request.Context(), body.ID, &body.UpdateRecipeRequest)
	if err != nil {
		handleServiceError(c, err, "Recipe not found")
		return
	}
	Success(c, recipe)
}

type deleteRecipeBody struct {
	ID string `json:"id"`
}

// Delete DELETE /recipes
func (h *RecipeHandler) Delete(c *gin.Context) {
	var body deleteRecipeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		BadRequest(c, "Id field is required")
		return
	}
	recipe, err := h.svc.Delete(c.Request.Context(), body.ID)
	if err != nil {
		handleServiceError(c, err, "Recipe not found")
		return
	}
	SuccessMessage(c, fmt.Sprintf("Recipe %s (%s) deleted", recipe.Name, recipe.ID), nil)
}
