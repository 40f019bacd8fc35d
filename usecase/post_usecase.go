package usecase

import (
	"fullstack-go-server/domain/entity"
	"fullstack-go-server/domain/repository"

	"github.com/google/uuid"
)

// PostUseCase 帖子业务逻辑层
type PostUseCase struct {
	posts repository.PostRepository
	users *UserUseCase
}

// NewPostUseCase 构造函数，依赖注入
func NewPostUseCase(posts repository.PostRepository, users *UserUseCase) *PostUseCase {
	return &PostUseCase{posts: posts, users: users}
}

// CreatePost 创建帖子
// ⚠️ 顺序关键：先 EnsureUser 再插入帖子，外键按构造不可能悬空
// 传完整身份而非裸 ID，保证首写时档案字段一并落库
// 两步不包事务；并发首写由 EnsureUser 的 ON CONFLICT 语义兜底
func (uc *PostUseCase) CreatePost(identity *entity.Identity, name string, content *string) (*entity.Post, error) {
	if _, err := uc.users.EnsureUser(identity); err != nil {
		return nil, err
	}

	post := &entity.Post{
		ID:       uuid.NewString(),
		Name:     name,
		Content:  content,
		AuthorID: identity.ID,
	}
	if err := uc.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// LatestPost 最新一条帖子（带作者投影）；表为空返回 nil
func (uc *PostUseCase) LatestPost() (*entity.Post, error) {
	return uc.posts.Latest()
}

// ListPosts 全部帖子（带作者投影），最新在前
func (uc *PostUseCase) ListPosts() ([]entity.Post, error) {
	return uc.posts.ListAll()
}

// ListUserPosts 指定作者的帖子，最新在前
func (uc *PostUseCase) ListUserPosts(authorID string) ([]entity.Post, error) {
	return uc.posts.ListByAuthor(authorID)
}
