package repository

import (
	"errors"

	"fullstack-go-server/domain/entity"
	domainRepo "fullstack-go-server/domain/repository"

	"gorm.io/gorm"
)

// postRepository GORM 实现 PostRepository 接口
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 构造函数
func NewPostRepository(db *gorm.DB) domainRepo.PostRepository {
	return &postRepository{db: db}
}

// newestFirst 统一排序：created_at 相同时按 id 兜底，保证结果确定
const newestFirst = "created_at DESC, id DESC"

// Create 插入新帖子
// 调用方必须先保证作者行存在（usecase 层的 ensure-then-create 顺序）
func (r *postRepository) Create(post *entity.Post) error {
	return translate(r.db.Create(post).Error)
}

// Latest 最新一条帖子（预载作者投影用）
func (r *postRepository) Latest() (*entity.Post, error) {
	var post entity.Post
	err := r.db.Preload("Author").Order(newestFirst).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // 表为空，调用方返回 null
	}
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListAll 全部帖子，最新在前
func (r *postRepository) ListAll() ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.Preload("Author").Order(newestFirst).Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// ListByAuthor 指定作者的帖子，最新在前
func (r *postRepository) ListByAuthor(authorID string) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.Where("author_id = ?", authorID).Order(newestFirst).Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// CountByAuthor 指定作者的帖子数
func (r *postRepository) CountByAuthor(authorID string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
