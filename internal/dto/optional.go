package dto

import "encoding/json"

// Optional 部分更新字段
// Set 表示请求中出现了该字段；显式 null 视为出现且取零值
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some 构造已设置的字段
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Get 返回值以及是否设置
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
