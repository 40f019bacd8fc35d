package repository

import "fullstack-go-server/domain/entity"

// UserRepository 用户数据仓库接口
type UserRepository interface {
	// CreateIfAbsent 不存在则创建，存在则完全不动（create-or-fetch 的写半边）
	// 并发安全依赖数据库 ON CONFLICT DO NOTHING，应用层不加锁
	CreateIfAbsent(user *entity.User) error

	// Upsert 不存在则创建，存在则只覆盖 columns 指定的列（create-or-replace）
	// columns 为空时退化为 CreateIfAbsent
	// 注意：与 CreateIfAbsent 在并发写入下语义不同，调用方必须明确选择
	Upsert(user *entity.User, columns []string) error

	// GetByID 根据 Clerk user_id 获取用户；不存在返回 nil, nil
	GetByID(userID string) (*entity.User, error)

	// UpdateIfPresent 仅当行已存在时刷新档案字段（Webhook 同步使用）
	// 返回是否命中了已有行；不存在时不插入，保持惰性创建不变式
	UpdateIfPresent(user *entity.User) (bool, error)
}
