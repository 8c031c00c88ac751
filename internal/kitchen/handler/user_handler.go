package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// UserHandler 用户处理器
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler 创建用户处理器
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if len(users) == 0 {
		BadRequest(c, "No users found")
		return
	}
	Success(c, gin.H{"items": users})
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	user, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	Created(c, user)
}

type updateUserBody struct {
	ID string `json:"id"`
	service.UpdateUserRequest
}

// Update PATCH /users
func (h *UserHandler) Update(c *gin.Context) {
	var body updateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		BadRequest(c, "Id field is required")
		return
	}
	user, err := h.svc.Update(c.Request.Context(), body.ID, &body.UpdateUserRequest)
	if err != nil {
		handleServiceError(c, err, "User not found")
		return
	}
	Success(c, user)
}

type deleteUserBody struct {
	ID string `json:"id"`
}

// Delete DELETE /users
func (h *UserHandler) Delete(c *gin.Context) {
	var body deleteUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		BadRequest(c, "Id field is required")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), body.ID); err != nil {
		handleServiceError(c, err, "User not found")
		return
	}
	SuccessMessage(c, "User "+body.ID+" deleted", nil)
}
