package entity

import "time"

// Post 帖子表
// AuthorID 外键指向 User.ID；写入前必须先 ensure 作者行（见 usecase.PostUseCase）
// 本层没有编辑/删除路径，CreatedAt 写入后不可变
type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // UUID
	Name      string    `gorm:"size:255;not null" json:"name"`
	Content   *string   `gorm:"type:text" json:"content"`
	AuthorID  string    `gorm:"size:64;index;not null" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
