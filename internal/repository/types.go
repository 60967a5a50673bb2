package repository

import (
	"fmt"

	"gorm.io/gorm"

	"issue-hub/pkg/constants"
)

type QueryOption func(*gorm.DB) *gorm.DB

// WithOrder 指定排序
func WithOrder(order string) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

// WithLimit 限制返回条数
func WithLimit(limit int) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	}
}

func applyOptions(db *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// jsonArrayContains 生成"JSON 字符串数组列包含某值"的条件，参数为一个占位符
func jsonArrayContains(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case constants.DriverMySQL:
		return fmt.Sprintf("JSON_CONTAINS(%s, JSON_QUOTE(?))", column)
	case constants.DriverPostgres:
		return fmt.Sprintf("%s @> jsonb_build_array(?::text)", column)
	default:
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(CAST(%s AS TEXT)) WHERE json_each.value = ?)", column)
	}
}
