package entity

import "time"

// Recipe 菜谱实体：由库存项组合而成，totalCost为创建时的合计成本
type Recipe struct {
	ID         string      `json:"id" gorm:"primaryKey;size:32"`
	UserID     string      `json:"user" gorm:"size:32;not null;uniqueIndex:idx_recipes_user_name"`
	Name       string      `json:"name" gorm:"size:128;not null;uniqueIndex:idx_recipes_user_name"`
	Categories StringArray `json:"categories" gorm:"type:jsonb"`
	TotalCost  float64     `json:"total_cost" gorm:"type:numeric(15,4);not null;default:0"`
	Currency   string      `json:"currency" gorm:"size:8;not null;default:GBP"`
	Servings   int         `json:"servings" gorm:"not null;default:75"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// 关联
	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID"`
	Owner       *User              `json:"owner,omitempty" gorm:"foreignKey:UserID"`

	// 非数据库字段
	Username string `json:"username,omitempty" gorm:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient 菜谱配料行项：引用库存项
type RecipeIngredient struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	RecipeID  string    `json:"recipe_id" gorm:"size:32;not null;index"`
	StockID   string    `json:"stock" gorm:"size:32;not null;index"`
	Amount    float64   `json:"amount" gorm:"type:numeric(15,4);not null;default:0"`
	Unit      string    `json:"unit" gorm:"size:16;not null"`
	Cost      float64   `json:"cost" gorm:"type:numeric(15,4);not null;default:0"`
	Currency  string    `json:"currency" gorm:"size:8;not null;default:GBP"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`

	// 关联
	Stock *Stock `json:"stock_item,omitempty" gorm:"foreignKey:StockID"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
