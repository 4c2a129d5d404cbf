// Package storage 定义存储层领域错误
//
// 这些错误用于隔离业务层与底层存储引擎的错误类型，
// 驱动实现（mongostore）负责将底层错误转换为这些领域错误。
package storage

import "errors"

var (
	// ErrNotFound 实体不存在
	// 替代 mongo.ErrNoDocuments
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate 唯一键冲突（邮箱/用户名/GST 等唯一索引）
	ErrDuplicate = errors.New("duplicate: entity already exists")

	// ErrUnavailable 存储不可用（连接失败或超时），调用方可安全重试
	ErrUnavailable = errors.New("storage unavailable")
)
