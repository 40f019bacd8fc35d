package procedures

import (
	"time"

	"fullstack-go-server/domain/entity"
)

// --- 输出视图定义 ---
// 客户端桥接层（client 包）复用同一套类型，保证两端出入参一致

// AuthorView 作者投影：只暴露姓名和邮箱，不带头像等完整档案
type AuthorView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// PostView 帖子视图
// Author 只在带投影的查询（getLatest / getAll）里出现
type PostView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Content   *string     `json:"content"`
	AuthorID  string      `json:"authorId"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    *AuthorView `json:"author,omitempty"`
}

// toPostView 实体 → 视图；预载了作者时附上投影
func toPostView(post *entity.Post) *PostView {
	view := &PostView{
		ID:        post.ID,
		Name:      post.Name,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
	}
	if post.Author != nil {
		view.Author = &AuthorView{
			FirstName: post.Author.FirstName,
			LastName:  post.Author.LastName,
			Email:     post.Author.Email,
		}
	}
	return view
}

// toPostViews 批量转换
func toPostViews(posts []entity.Post) []*PostView {
	views := make([]*PostView, 0, len(posts))
	for i := range posts {
		views = append(views, toPostView(&posts[i]))
	}
	return views
}
