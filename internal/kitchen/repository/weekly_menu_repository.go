package repository

import (
	"context"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"gorm.io/gorm"
)

type WeeklyMenuRepository struct {
	db *gorm.DB
}

func NewWeeklyMenuRepository(db *gorm.DB) *WeeklyMenuRepository {
	return &WeeklyMenuRepository{db: db}
}

func (r *WeeklyMenuRepository) Create(ctx context.Context, wm *entity.WeeklyMenu) error {
	return r.db.WithContext(ctx).Create(wm).Error
}

func (r *WeeklyMenuRepository) FindByID(ctx context.Context, id string) (*entity.WeeklyMenu, error) {
	var wm entity.WeeklyMenu
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Slots.Menu").
		Preload("Slots.Menu.Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Slots.Menu.Slots.Recipe").
		Preload("Slots.Menu.Slots.Recipe.Ingredients").
		First(&wm, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	wm.GroupSlots()
	return &wm, nil
}

// FindByUserWeek 按(用户,周数,年份)查找，用于同周重复检查；未找到时返回nil而非错误
func (r *WeeklyMenuRepository) FindByUserWeek(ctx context.Context, userID string, weekNumber, year int) (*entity.WeeklyMenu, error) {
	var wm entity.WeeklyMenu
	err := r.db.WithContext(ctx).
		First(&wm, "user_id = ? AND week_number = ? AND year = ?", userID, weekNumber, year).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &wm, nil
}

func (r *WeeklyMenuRepository) List(ctx context.Context) ([]entity.WeeklyMenu, error) {
	var wms []entity.WeeklyMenu
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Slots.Menu").
		Order("year DESC, week_number DESC").
		Find(&wms).Error
	if err != nil {
		return nil, err
	}
	for i := range wms {
		wms[i].GroupSlots()
	}
	return wms, nil
}

// Update 整体替换：保存周菜单并重建日别行项
func (r *WeeklyMenuRepository) Update(ctx context.Context, wm *entity.WeeklyMenu, slots []entity.WeeklyMenuSlot) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Omit("Slots").Save(wm).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("weekly_menu_id = ?", wm.ID).Delete(&entity.WeeklyMenuSlot{}).Error; err != nil {
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

func (r *WeeklyMenuRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Where("weekly_menu_id = ?", id).Delete(&entity.WeeklyMenuSlot{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&entity.WeeklyMenu{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// UpdateSlotStatus 更新单个日别行项的备货告警标记
func (r *WeeklyMenuRepository) UpdateSlotStatus(ctx context.Context, slotID string, status string) error {
	return r.db.WithContext(ctx).Model(&entity.WeeklyMenuSlot{}).
		Where("id = ?", slotID).
		Update("stock_wk_status", status).Error
}

// CountByMenu 统计引用某菜单的日别行项数量，菜单删除守卫使用
func (r *WeeklyMenuRepository) CountByMenu(ctx context.Context, menuID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.WeeklyMenuSlot{}).
		Where("menu_id = ?", menuID).Count(&count).Error
	return count, err
}
