package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/config"
	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/handler"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
	"github.com/hungrybyte/galley/internal/kitchen/service"
	"github.com/hungrybyte/galley/internal/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const loginRateLimit = 5

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting galley service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Stock{},
		&entity.Recipe{},
		&entity.RecipeIngredient{},
		&entity.Menu{},
		&entity.MenuSlot{},
		&entity.WeeklyMenu{},
		&entity.WeeklyMenuSlot{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 仓库、服务、处理器
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	services.Stock.SetLogger(zapLogger)
	handlers := handler.NewHandlers(services, cfg)

	// 盘点重置后台任务
	auditCtx, auditCancel := context.WithCancel(context.Background())
	defer auditCancel()
	go services.Stock.RunAuditResetLoop(auditCtx, cfg.Audit.ResetInterval)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, rdb, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	auditCancel()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, rdb *redis.Client, cfg *config.Config) {
	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// 认证 (无需登录)
	auth := r.Group("/auth")
	{
		auth.POST("", middleware.LoginRateLimit(rdb, loginRateLimit, time.Minute), h.Auth.Login)
		auth.GET("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	// 需要认证的接口
	authorized := r.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		// 用户管理 (仅Manager)
		users := authorized.Group("/users", middleware.RequireRole("Manager"))
		{
			users.GET("", h.User.List)
			users.POST("", h.User.Create)
			users.PATCH("", h.User.Update)
			users.DELETE("", h.User.Delete)
		}

		// 库存
		stocks := authorized.Group("/stocks")
		{
			stocks.GET("", h.Stock.List)
			stocks.POST("", h.Stock.Create)
			stocks.PATCH("/:id", h.Stock.Update)
			stocks.DELETE("", h.Stock.Delete)
			stocks.PATCH("/check/:id", h.Stock.CheckOff)
			stocks.GET("/export", h.Stock.Export)
		}

		// 菜谱
		recipes := authorized.Group("/recipes")
		{
			recipes.GET("", h.Recipe.List)
			recipes.POST("", h.Recipe.Create)
			recipes.PATCH("", h.Recipe.Update)
			recipes.DELETE("", h.Recipe.Delete)
		}

		// 菜单
		menus := authorized.Group("/menus")
		{
			menus.GET("", h.Menu.List)
			menus.POST("", h.Menu.Create)
			menus.PATCH("", h.Menu.Update)
			menus.DELETE("", h.Menu.Delete)
		}

		// 周菜单
		weeklyMenus := authorized.Group("/weeklymenus")
		{
			weeklyMenus.GET("", h.WeeklyMenu.List)
			weeklyMenus.POST("", h.WeeklyMenu.Create)
			weeklyMenus.PATCH("/:id", h.WeeklyMenu.Update)
			weeklyMenus.DELETE("/:id", h.WeeklyMenu.Delete)
			weeklyMenus.POST("/:id/stock-check", h.WeeklyMenu.StockCheck)
		}

		// 图片上传
		authorized.POST("/upload", h.Upload.Upload)
	}
}
