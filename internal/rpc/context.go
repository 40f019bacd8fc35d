package rpc

import (
	"context"

	"fullstack-go-server/domain/entity"
)

// Context 每次过程调用的显式上下文
// 每个请求构造一次，作为显式参数传进 handler —— 不用任何隐式/线程局部状态
// Identity 为 nil 表示匿名调用者
type Context struct {
	Ctx      context.Context
	Identity *entity.Identity
}

// Authenticated 是否已认证
func (c *Context) Authenticated() bool {
	return c.Identity != nil
}
