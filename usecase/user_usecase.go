package usecase

import (
	"time"

	"fullstack-go-server/domain/entity"
	"fullstack-go-server/domain/repository"
)

// UserUseCase 用户业务逻辑层
// 核心不变式：User 行惰性创建 —— 只在首次认证写操作时落库
type UserUseCase struct {
	users repository.UserRepository
	posts repository.PostRepository
}

// NewUserUseCase 构造函数，依赖注入
func NewUserUseCase(users repository.UserRepository, posts repository.PostRepository) *UserUseCase {
	return &UserUseCase{users: users, posts: posts}
}

// UserStats 用户统计
// JoinedAt 取 Clerk 身份的创建时间，不是本地行的 CreatedAt
type UserStats struct {
	PostCount int64     `json:"postCount"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// userFromIdentity 从外部身份构造本地用户行
// 身份没有邮箱时 Email 为空字符串
func userFromIdentity(identity *entity.Identity) *entity.User {
	return &entity.User{
		ID:        identity.ID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		ImageURL:  identity.ImageURL,
	}
}

// EnsureUser 幂等的 create-or-fetch
// 行已存在时不改动任何档案字段，只把现有行读回来
// 并发首写依赖 ON CONFLICT DO NOTHING，应用层不串行化
func (uc *UserUseCase) EnsureUser(identity *entity.Identity) (*entity.User, error) {
	if err := uc.users.CreateIfAbsent(userFromIdentity(identity)); err != nil {
		return nil, err
	}
	return uc.users.GetByID(identity.ID)
}

// GetProfile 当前用户档案，本地不存在时自动创建
func (uc *UserUseCase) GetProfile(identity *entity.Identity) (*entity.User, error) {
	return uc.EnsureUser(identity)
}

// UpdateProfile 更新档案（create-or-replace，只覆盖传入的列）
// firstName/lastName 为 nil 表示该字段不改动
// 行不存在时以身份档案为底创建，再套用传入的字段
func (uc *UserUseCase) UpdateProfile(identity *entity.Identity, firstName, lastName *string) (*entity.User, error) {
	user := userFromIdentity(identity)

	var columns []string
	if firstName != nil {
		user.FirstName = *firstName
		columns = append(columns, "first_name")
	}
	if lastName != nil {
		user.LastName = *lastName
		columns = append(columns, "last_name")
	}

	if err := uc.users.Upsert(user, columns); err != nil {
		return nil, err
	}
	return uc.users.GetByID(identity.ID)
}

// Stats 当前用户统计
func (uc *UserUseCase) Stats(identity *entity.Identity) (*UserStats, error) {
	count, err := uc.posts.CountByAuthor(identity.ID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		PostCount: count,
		JoinedAt:  identity.CreatedAt,
	}, nil
}

// SyncProfile Clerk Webhook 档案同步
// 只刷新已存在的行；本地没有的用户保持惰性创建，不因 Webhook 落库
// 返回是否命中了本地行
func (uc *UserUseCase) SyncProfile(user *entity.User) (bool, error) {
	return uc.users.UpdateIfPresent(user)
}
