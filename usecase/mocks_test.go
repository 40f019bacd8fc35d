package usecase

import (
	"fullstack-go-server/domain/entity"

	"github.com/stretchr/testify/mock"
)

// ========== MockUserRepository ==========
// 实现 repository.UserRepository 接口，用于 UseCase 的单元测试

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateIfAbsent(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Upsert(user *entity.User, columns []string) error {
	args := m.Called(user, columns)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(userID string) (*entity.User, error) {
	args := m.Called(userID)
	// 处理 nil 情况
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateIfPresent(user *entity.User) (bool, error) {
	args := m.Called(user)
	return args.Bool(0), args.Error(1)
}

// ========== MockPostRepository ==========
// 实现 repository.PostRepository 接口

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Latest() (*entity.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListAll() ([]entity.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(authorID string) ([]entity.Post, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) CountByAuthor(authorID string) (int64, error) {
	args := m.Called(authorID)
	return args.Get(0).(int64), args.Error(1)
}
