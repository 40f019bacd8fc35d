package procedures

import (
	"fullstack-go-server/internal/rpc"
	"fullstack-go-server/usecase"
)

// --- user.* 过程输入定义 ---

// UpdateProfileInput user.updateProfile 输入
// 两个字段都可选；nil 表示该字段不改动
type UpdateProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// RegisterUserProcedures 注册 user.* 过程（全部受保护）
func RegisterUserProcedures(reg *rpc.Registry, userUC *usecase.UserUseCase) {
	// user.getProfile 当前用户档案，本地不存在时自动创建
	reg.Register(&rpc.Procedure{
		Name:   "user.getProfile",
		Kind:   rpc.KindQuery,
		Access: rpc.AccessProtected,
		Handle: func(c *rpc.Context, input any) (any, error) {
			return userUC.GetProfile(c.Identity)
		},
	})

	// user.updateProfile 更新档案（create-or-replace，只覆盖传入的列）
	reg.Register(&rpc.Procedure{
		Name:     "user.updateProfile",
		Kind:     rpc.KindMutation,
		Access:   rpc.AccessProtected,
		NewInput: func() any { return &UpdateProfileInput{} },
		Handle: func(c *rpc.Context, input any) (any, error) {
			in := input.(*UpdateProfileInput)
			return userUC.UpdateProfile(c.Identity, in.FirstName, in.LastName)
		},
	})

	// user.getStats 当前用户统计
	// joinedAt 来自 Clerk 身份的创建时间，不读本地行
	reg.Register(&rpc.Procedure{
		Name:   "user.getStats",
		Kind:   rpc.KindQuery,
		Access: rpc.AccessProtected,
		Handle: func(c *rpc.Context, input any) (any, error) {
			return userUC.Stats(c.Identity)
		},
	})
}
