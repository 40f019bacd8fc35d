package repository

import "fullstack-go-server/domain/entity"

// PostRepository 帖子数据仓库接口
// 排序约定：所有列表/最新查询按 created_at DESC, id DESC
// （时间戳相同时用 id 兜底，保证确定性）
type PostRepository interface {
	// Create 插入新帖子（本层无编辑/删除路径）
	Create(post *entity.Post) error

	// Latest 最新一条帖子，预载作者；表为空返回 nil, nil
	Latest() (*entity.Post, error)

	// ListAll 全部帖子，预载作者，最新在前
	ListAll() ([]entity.Post, error)

	// ListByAuthor 指定作者的帖子，最新在前（不预载作者）
	ListByAuthor(authorID string) ([]entity.Post, error)

	// CountByAuthor 指定作者的帖子数
	CountByAuthor(authorID string) (int64, error)
}
