package model

import "time"

// User 用户模型
type User struct {
	BaseModel
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Email       string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password    string     `gorm:"size:255" json:"-"` // 不返回到前端，LDAP 用户为空
	AuthType    string     `gorm:"size:20;not null;default:'local'" json:"auth_type"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
