package repository

import (
	"context"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) Create(ctx context.Context, menu *entity.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*entity.Menu, error) {
	var menu entity.Menu
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Slots.Recipe").
		First(&menu, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	menu.GroupSlots()
	return &menu, nil
}

// FindByUserAndName 按(用户,名称)查找，用于重名检查；未找到时返回nil而非错误
func (r *MenuRepository) FindByUserAndName(ctx context.Context, userID, name string) (*entity.Menu, error) {
	var menu entity.Menu
	err := r.db.WithContext(ctx).First(&menu, "user_id = ? AND name = ?", userID, name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) List(ctx context.Context) ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Slots.Recipe").
		Order("name ASC").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	for i := range menus {
		menus[i].GroupSlots()
	}
	return menus, nil
}

// Update 整体替换：保存菜单并重建餐别行项
func (r *MenuRepository) Update(ctx context.Context, menu *entity.Menu, slots []entity.MenuSlot) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Omit("Slots").Save(menu).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("menu_id = ?", menu.ID).Delete(&entity.MenuSlot{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(slots) > 0 {
		if err := tx.Create(&slots).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Where("menu_id = ?", id).Delete(&entity.MenuSlot{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&entity.Menu{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// CountByRecipe 统计引用某菜谱的餐别行项数量，菜谱删除守卫使用
func (r *MenuRepository) CountByRecipe(ctx context.Context, recipeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.MenuSlot{}).
		Where("recipe_id = ?", recipeID).Count(&count).Error
	return count, err
}
