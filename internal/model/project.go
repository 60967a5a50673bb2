package model

import (
	"github.com/samber/lo"
	"gorm.io/datatypes"
)

const ProjectTableName = "projects"

// Project 项目模型
// 成员以ID数组形式保存在 members 列，host 不自动计入成员
type Project struct {
	BaseModel
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	HostID      string                      `gorm:"size:36;not null;index" json:"host_id"`
	Members     datatypes.JSONSlice[string] `json:"members"`
}

func (Project) TableName() string {
	return ProjectTableName
}

func (p *Project) GetHostID() string {
	return p.HostID
}

func (p *Project) GetMemberIDs() []string {
	return p.Members
}

// HasMember 是否为项目成员（不含 host）
func (p *Project) HasMember(userID string) bool {
	return lo.Contains(p.Members, userID)
}
