package service

import (
	"context"
	"strings"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService 用户服务
type UserService struct {
	repo      *repository.UserRepository
	stockRepo *repository.StockRepository
}

// NewUserService 创建用户服务
func NewUserService(repo *repository.UserRepository, stockRepo *repository.StockRepository) *UserService {
	return &UserService{repo: repo, stockRepo: stockRepo}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Email    *string  `json:"email"`
	Name     *string  `json:"name"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
}

// Create 创建用户：邮箱归一化小写，密码bcrypt加密，默认角色Chef
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*entity.User, error) {
	if req.Email == "" {
		return nil, &RequiredFieldError{Field: "Email"}
	}
	if req.Name == "" {
		return nil, &RequiredFieldError{Field: "Name"}
	}
	if req.Password == "" {
		return nil, &RequiredFieldError{Field: "Password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{entity.DefaultRole}
	}

	user := &entity.User{
		ID:       generateID(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Name:     req.Name,
		Password: string(hash),
		Roles:    roles,
		Active:   true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate user email detected"}
		}
		return nil, err
	}
	return user, nil
}

// Get 获取单个用户
func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List 获取所有用户
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.repo.List(ctx)
}

// Update 更新用户：仅在提供密码时重新加密
func (s *UserService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if req.Roles != nil {
		user.Roles = req.Roles
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate user email detected"}
		}
		return nil, err
	}
	return user, nil
}

// Delete 删除用户：名下尚有库存项时拒绝
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.stockRepo.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &DependencyError{Message: "User has assigned stocks, please delete the stocks first"}
	}
	return s.repo.Delete(ctx, id)
}
