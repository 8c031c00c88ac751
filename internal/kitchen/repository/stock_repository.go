package repository

import (
	"context"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"gorm.io/gorm"
)

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

func (r *StockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

func (r *StockRepository) FindByID(ctx context.Context, id string) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).First(&stock, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &stock, nil
}

// FindByUserAndName 按(用户,名称)查找，用于重名检查；未找到时返回nil而非错误
func (r *StockRepository) FindByUserAndName(ctx context.Context, userID, name string) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).First(&stock, "user_id = ? AND name = ?", userID, name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *StockRepository) List(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).Order("name ASC").Find(&stocks).Error
	return stocks, err
}

// ListChecked 查出所有已盘点的库存项，盘点重置任务使用
func (r *StockRepository) ListChecked(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).Where("is_checked = ?", true).Find(&stocks).Error
	return stocks, err
}

func (r *StockRepository) Update(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

func (r *StockRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Stock{}, "id = ?", id).Error
}

// CountByUser 统计某用户持有的库存项数量，用户删除守卫使用
func (r *StockRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Stock{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SumCurrentStock 汇总某用户全部在库数量，供备货估算做基线
func (r *StockRepository) SumCurrentStock(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.Stock{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(current_stock), 0)").
		Scan(&total).Error
	return total, err
}
