package procedures

import (
	"fullstack-go-server/internal/rpc"
	"fullstack-go-server/usecase"
)

// --- post.* 过程输入定义 ---

// HelloInput post.hello 输入
type HelloInput struct {
	Text string `json:"text"`
}

// HelloOutput post.hello 输出
type HelloOutput struct {
	Greeting string `json:"greeting"`
}

// CreatePostInput post.create 输入
// name 必填且非空；content 可选
type CreatePostInput struct {
	Name    string  `json:"name" validate:"required,min=1"`
	Content *string `json:"content"`
}

// RegisterPostProcedures 注册 post.* 过程
func RegisterPostProcedures(reg *rpc.Registry, postUC *usecase.PostUseCase) {
	// post.hello 连通性演示（公开查询）
	reg.Register(&rpc.Procedure{
		Name:     "post.hello",
		Kind:     rpc.KindQuery,
		Access:   rpc.AccessPublic,
		NewInput: func() any { return &HelloInput{} },
		Handle: func(c *rpc.Context, input any) (any, error) {
			in := input.(*HelloInput)
			return &HelloOutput{Greeting: "Hello " + in.Text}, nil
		},
	})

	// post.create 创建帖子（受保护变更）
	// 作者行由 usecase 在插入前 ensure，首写自动建档
	reg.Register(&rpc.Procedure{
		Name:     "post.create",
		Kind:     rpc.KindMutation,
		Access:   rpc.AccessProtected,
		NewInput: func() any { return &CreatePostInput{} },
		Handle: func(c *rpc.Context, input any) (any, error) {
			in := input.(*CreatePostInput)
			post, err := postUC.CreatePost(c.Identity, in.Name, in.Content)
			if err != nil {
				return nil, err
			}
			return toPostView(post), nil
		},
	})

	// post.getLatest 最新帖子（公开查询，带作者投影）
	// 表为空时返回 null，属于合法结果而非 NotFound
	reg.Register(&rpc.Procedure{
		Name:   "post.getLatest",
		Kind:   rpc.KindQuery,
		Access: rpc.AccessPublic,
		Handle: func(c *rpc.Context, input any) (any, error) {
			post, err := postUC.LatestPost()
			if err != nil {
				return nil, err
			}
			if post == nil {
				return nil, nil
			}
			return toPostView(post), nil
		},
	})

	// post.getAll 全部帖子（公开查询，带作者投影，最新在前）
	reg.Register(&rpc.Procedure{
		Name:   "post.getAll",
		Kind:   rpc.KindQuery,
		Access: rpc.AccessPublic,
		Handle: func(c *rpc.Context, input any) (any, error) {
			posts, err := postUC.ListPosts()
			if err != nil {
				return nil, err
			}
			return toPostViews(posts), nil
		},
	})

	// post.getUserPosts 当前用户自己的帖子（受保护查询，最新在前）
	reg.Register(&rpc.Procedure{
		Name:   "post.getUserPosts",
		Kind:   rpc.KindQuery,
		Access: rpc.AccessProtected,
		Handle: func(c *rpc.Context, input any) (any, error) {
			posts, err := postUC.ListUserPosts(c.Identity.ID)
			if err != nil {
				return nil, err
			}
			return toPostViews(posts), nil
		},
	})
}
