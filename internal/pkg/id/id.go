package id

import (
	"github.com/google/uuid"
)

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// NewV7 生成按时间有序的UUID，用于需要按创建顺序排列的消息
func NewV7() string {
	u, err := uuid.NewV7()
	if err != nil {
		return New()
	}
	return u.String()
}

// IsValid 验证UUID格式是否有效
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
