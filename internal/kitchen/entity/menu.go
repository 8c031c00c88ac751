package entity

import "time"

// 餐段
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// Menu 菜单实体：按早/午/晚餐段组合菜谱，menuCost为创建时各菜谱成本合计
type Menu struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	UserID    string    `json:"user" gorm:"size:32;not null;uniqueIndex:idx_menus_user_name"`
	Name      string    `json:"name" gorm:"size:128;not null;uniqueIndex:idx_menus_user_name"`
	MenuCost  float64   `json:"menu_cost" gorm:"type:numeric(15,4);not null;default:0"`
	Currency  string    `json:"currency" gorm:"size:8;not null;default:GBP"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Slots []MenuSlot `json:"-" gorm:"foreignKey:MenuID"`
	Owner *User      `json:"owner,omitempty" gorm:"foreignKey:UserID"`

	// 非数据库字段：按餐段分组后的槽位
	Breakfasts []MenuSlot `json:"breakfasts,omitempty" gorm:"-"`
	Lunches    []MenuSlot `json:"lunches,omitempty" gorm:"-"`
	Dinners    []MenuSlot `json:"dinners,omitempty" gorm:"-"`
	Username   string     `json:"username,omitempty" gorm:"-"`
}

func (Menu) TableName() string {
	return "menus"
}

// GroupSlots 将槽位按餐段分组到非数据库字段
func (m *Menu) GroupSlots() {
	m.Breakfasts = m.Breakfasts[:0]
	m.Lunches = m.Lunches[:0]
	m.Dinners = m.Dinners[:0]
	for _, slot := range m.Slots {
		switch slot.Meal {
		case MealBreakfast:
			m.Breakfasts = append(m.Breakfasts, slot)
		case MealLunch:
			m.Lunches = append(m.Lunches, slot)
		case MealDinner:
			m.Dinners = append(m.Dinners, slot)
		}
	}
}

// MenuSlot 菜单槽位：某餐段下的一道菜谱
type MenuSlot struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	MenuID    string    `json:"menu_id" gorm:"size:32;not null;index"`
	Meal      string    `json:"meal" gorm:"size:16;not null"`
	RecipeID  string    `json:"recipe" gorm:"size:32;not null;index"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`

	// 关联
	Recipe *Recipe `json:"recipe_item,omitempty" gorm:"foreignKey:RecipeID"`
}

func (MenuSlot) TableName() string {
	return "menu_slots"
}
