package entity

import (
	"time"

	"gorm.io/gorm"
)

// WeekDays 一周七天，聚合顺序固定从周一开始
var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// StockShortWarning 库存不足标记，写在预计短缺当天的第一个槽位上
const StockShortWarning = "will be short stock"

// WeeklyMenu 周菜单实体：每用户每(周号,年份)唯一
type WeeklyMenu struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	UserID         string    `json:"user" gorm:"size:32;not null;uniqueIndex:idx_weekly_menus_user_week"`
	WeekNumber     int       `json:"week_number" gorm:"not null;uniqueIndex:idx_weekly_menus_user_week"`
	Year           int       `json:"year" gorm:"not null;uniqueIndex:idx_weekly_menus_user_week"`
	WeeklyMenuCost string    `json:"weekly_menu_cost" gorm:"size:16;not null"`
	Currency       string    `json:"currency" gorm:"size:8;not null;default:GBP"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// 关联
	Slots []WeeklyMenuSlot `json:"-" gorm:"foreignKey:WeeklyMenuID"`
	Owner *User            `json:"owner,omitempty" gorm:"foreignKey:UserID"`

	// 非数据库字段：按天分组后的槽位
	Days     map[string][]WeeklyMenuSlot `json:"days,omitempty" gorm:"-"`
	Username string                      `json:"username,omitempty" gorm:"-"`
}

func (WeeklyMenu) TableName() string {
	return "weekly_menus"
}

// BeforeSave 保存前根据(年份,周号)推导本周起止日期
func (w *WeeklyMenu) BeforeSave(tx *gorm.DB) error {
	w.StartDate, w.EndDate = WeekRange(w.Year, w.WeekNumber)
	return nil
}

// GroupSlots 将槽位按天分组到非数据库字段
func (w *WeeklyMenu) GroupSlots() {
	w.Days = make(map[string][]WeeklyMenuSlot, len(WeekDays))
	for _, slot := range w.Slots {
		w.Days[slot.Day] = append(w.Days[slot.Day], slot)
	}
}

// WeekRange 返回ISO周的周一00:00:00和周日23:59:59（UTC）
func WeekRange(year, week int) (time.Time, time.Time) {
	// 1月4日总是落在ISO第一周
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := jan4.AddDate(0, 0, -(wd-1)+(week-1)*7)
	sunday := monday.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return monday, sunday
}

// WeeklyMenuSlot 周菜单槽位：某天安排的一个菜单
type WeeklyMenuSlot struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	WeeklyMenuID  string    `json:"weekly_menu_id" gorm:"size:32;not null;index"`
	Day           string    `json:"day" gorm:"size:16;not null"`
	MenuID        string    `json:"menu" gorm:"size:32;not null;index"`
	SortOrder     int       `json:"sort_order" gorm:"not null;default:0"`
	StockWkStatus string    `json:"stock_wk_status,omitempty" gorm:"size:32"`
	CreatedAt     time.Time `json:"created_at"`

	// 关联
	Menu *Menu `json:"menu_item,omitempty" gorm:"foreignKey:MenuID"`
}

func (WeeklyMenuSlot) TableName() string {
	return "weekly_menu_slots"
}
