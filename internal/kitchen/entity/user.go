package entity

import "time"

// 默认角色
const DefaultRole = "Chef"

// User 用户实体
type User struct {
	ID        string      `json:"id" gorm:"primaryKey;size:32"`
	Email     string      `json:"email" gorm:"size:128;not null;uniqueIndex"`
	Name      string      `json:"name" gorm:"size:64;not null"`
	Password  string      `json:"-" gorm:"size:128;not null"`
	Roles     StringArray `json:"roles" gorm:"type:jsonb"`
	Active    bool        `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasRole 判断用户是否拥有指定角色
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
