package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/config"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Stock      *StockHandler
	Recipe     *RecipeHandler
	Menu       *MenuHandler
	WeeklyMenu *WeeklyMenuHandler
	Upload     *UploadHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.Auth, cfg),
		User:       NewUserHandler(svc.User),
		Stock:      NewStockHandler(svc.Stock),
		Recipe:     NewRecipeHandler(svc.Recipe),
		Menu:       NewMenuHandler(svc.Menu),
		WeeklyMenu: NewWeeklyMenuHandler(svc.WeeklyMenu),
		Upload:     NewUploadHandler(svc.Upload),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessMessage 成功响应，携带面向用户的确认信息
func SuccessMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// Forbidden 禁止访问响应
func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict 冲突响应
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// TooManyRequests 限流响应
func TooManyRequests(c *gin.Context, message string) {
	Error(c, 42900, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// handleServiceError 业务错误到HTTP状态的统一映射。
// notFoundMessage非空时未找到返回400并携带该信息，否则返回404。
func handleServiceError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case service.IsRequiredField(err):
		BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		if notFoundMessage != "" {
			BadRequest(c, notFoundMessage)
		} else {
			NotFound(c, "record not found")
		}
	case errors.Is(err, service.ErrDuplicateName):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrWeekTaken):
		Conflict(c, "Weekly menu already exists for this week")
	case errors.Is(err, service.ErrHasDependents):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		Unauthorized(c, "You are not the owner of this weekly menu")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserInactive):
		Unauthorized(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
