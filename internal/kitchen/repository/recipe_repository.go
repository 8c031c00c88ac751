package repository

import (
	"context"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &recipe, nil
}

// FindByUserAndName 按(用户,名称)查找，用于重名检查；未找到时返回nil而非错误
func (r *RecipeRepository) FindByUserAndName(ctx context.Context, userID, name string) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.db.WithContext(ctx).First(&recipe, "user_id = ? AND name = ?", userID, name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]entity.Recipe, error) {
	var recipes []entity.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("name ASC").
		Find(&recipes).Error
	return recipes, err
}

// Update 整体替换：保存菜谱并重建配料行项
func (r *RecipeRepository) Update(ctx context.Context, recipe *entity.Recipe, ingredients []entity.RecipeIngredient) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Omit("Ingredients").Save(recipe).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entity.RecipeIngredient{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(ingredients) > 0 {
		if err := tx.Create(&ingredients).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Where("recipe_id = ?", id).Delete(&entity.RecipeIngredient{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&entity.Recipe{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// CountByStock 统计引用某库存项的配料行项数量，库存删除守卫使用
func (r *RecipeRepository) CountByStock(ctx context.Context, stockID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.RecipeIngredient{}).
		Where("stock_id = ?", stockID).Count(&count).Error
	return count, err
}
