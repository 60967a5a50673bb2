package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDLength 资源ID长度（UUID 字符串）
const IDLength = 36

type BaseModel struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate 生成资源ID
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsValidID 判断是否为合法的资源ID
func IsValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
