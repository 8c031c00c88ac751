package entity

import "time"

// 库存状态
const (
	StockStatusFull = "Full"
	StockStatusGood = "Good"
	StockStatusLow  = "Low"
)

// Stock 库存项实体：名称在同一用户下唯一
type Stock struct {
	ID           string      `json:"id" gorm:"primaryKey;size:32"`
	UserID       string      `json:"user" gorm:"size:32;not null;uniqueIndex:idx_stocks_user_name"`
	Name         string      `json:"name" gorm:"size:128;not null;uniqueIndex:idx_stocks_user_name"`
	Categories   StringArray `json:"categories" gorm:"type:jsonb"`
	Cost         float64     `json:"cost" gorm:"type:numeric(15,4);not null;default:0"`
	Currency     string      `json:"currency" gorm:"size:8;not null;default:GBP"`
	CurrentStock float64     `json:"current_stock" gorm:"type:numeric(15,4);not null;default:0"`
	MinStock     float64     `json:"min_stock" gorm:"type:numeric(15,4);not null"`
	MaxStock     float64     `json:"max_stock" gorm:"type:numeric(15,4);not null"`
	Unit         string      `json:"unit" gorm:"size:16;not null"`
	PerUnit      string      `json:"per_unit" gorm:"size:16"`
	PerStock     float64     `json:"per_stock" gorm:"type:numeric(15,4);default:0"`
	PerCost      float64     `json:"per_cost" gorm:"type:numeric(15,4);default:0"`
	StockStatus  string      `json:"stock_status" gorm:"size:8;not null;default:Good"`
	IsChecked    bool        `json:"is_checked" gorm:"not null;default:false"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// 关联
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:UserID"`
}

func (Stock) TableName() string {
	return "stocks"
}
