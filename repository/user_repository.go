package repository

import (
	"errors"
	"time"

	"fullstack-go-server/domain/entity"
	domainRepo "fullstack-go-server/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository GORM 实现 UserRepository 接口
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 构造函数
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

// CreateIfAbsent 不存在则创建，存在则完全不动
// 使用 PostgreSQL ON CONFLICT DO NOTHING，并发首写安全由数据库保证
func (r *userRepository) CreateIfAbsent(user *entity.User) error {
	return translate(r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(user).Error)
}

// Upsert 不存在则创建，存在则只覆盖 columns 指定的列
func (r *userRepository) Upsert(user *entity.User, columns []string) error {
	if len(columns) == 0 {
		return r.CreateIfAbsent(user)
	}
	// updated_at 跟随每次覆盖
	assigned := append(append([]string{}, columns...), "updated_at")
	return translate(r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(assigned),
	}).Create(user).Error)
}

// GetByID 根据 Clerk user_id 查询用户
func (r *userRepository) GetByID(userID string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateIfPresent 仅刷新已存在的行（Clerk Webhook 同步使用）
// RowsAffected == 0 表示本地还没有这个用户，保持惰性创建，不插入
func (r *userRepository) UpdateIfPresent(user *entity.User) (bool, error) {
	result := r.db.Model(&entity.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"image_url":  user.ImageURL,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}
