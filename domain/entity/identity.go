package entity

import "time"

// Identity 外部身份提供方（Clerk）验证后的当前用户
// 与本地 User 表不同：Identity 来自每次请求的凭证解析，不落库
// CreatedAt 是 Clerk 侧的账号创建时间，而非本地行的创建时间
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	ImageURL  string
	CreatedAt time.Time
}
