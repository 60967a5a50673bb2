package dto

// IDQuery 查询参数中的资源ID，格式由业务层校验
type IDQuery struct {
	ID string `form:"id"`
}

// KeywordQuery 关键字查询参数
type KeywordQuery struct {
	Keyword string `form:"keyword"` // 可选：为空时返回全部
}

// DeleteResponse 删除结果
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
