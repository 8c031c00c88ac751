package service

import (
	"github.com/google/uuid"
	"github.com/hungrybyte/galley/internal/config"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Services 服务集合
type Services struct {
	Auth       *AuthService
	User       *UserService
	Stock      *StockService
	Recipe     *RecipeService
	Menu       *MenuService
	WeeklyMenu *WeeklyMenuService
	Upload     *UploadService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	// 初始化MinIO客户端
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	stockSvc := NewStockService(repos.Stock, repos.Recipe)
	recipeSvc := NewRecipeService(repos.Recipe, repos.Stock, repos.Menu, repos.User)
	menuSvc := NewMenuService(repos.Menu, repos.Recipe, repos.WeeklyMenu, repos.User)

	return &Services{
		Auth:       NewAuthService(repos.User, rdb, cfg),
		User:       NewUserService(repos.User, repos.Stock),
		Stock:      stockSvc,
		Recipe:     recipeSvc,
		Menu:       menuSvc,
		WeeklyMenu: NewWeeklyMenuService(repos.WeeklyMenu, repos.Menu, repos.Stock, repos.User),
		Upload:     NewUploadService(minioClient, cfg.MinIO.Bucket),
	}
}

func generateID() string {
	return uuid.New().String()[:32]
}
