package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// IsDuplicateKey 判断是否为唯一索引冲突
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Repositories 仓库集合
type Repositories struct {
	User       *UserRepository
	Stock      *StockRepository
	Recipe     *RecipeRepository
	Menu       *MenuRepository
	WeeklyMenu *WeeklyMenuRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Stock:      NewStockRepository(db),
		Recipe:     NewRecipeRepository(db),
		Menu:       NewMenuRepository(db),
		WeeklyMenu: NewWeeklyMenuRepository(db),
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
