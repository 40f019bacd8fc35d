package entity

import "time"

// User 本地用户表（镜像 Clerk 身份的档案字段）
// 惰性创建：首次认证写操作时才落库，注册时不会产生行
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"` // Clerk user_id
	Email     string    `gorm:"size:255" json:"email"`
	FirstName string    `gorm:"size:100" json:"firstName"`
	LastName  string    `gorm:"size:100" json:"lastName"`
	ImageURL  string    `gorm:"size:500" json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
