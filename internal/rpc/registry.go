package rpc

import (
	"encoding/json"
	"fmt"

	domainErrors "fullstack-go-server/domain/errors"
)

// Kind 过程类别
type Kind int

const (
	// KindQuery 查询：无副作用，可安全预取
	KindQuery Kind = iota
	// KindMutation 变更：有副作用
	KindMutation
)

// Access 访问级别
type Access int

const (
	// AccessPublic 公开：匿名可调用
	AccessPublic Access = iota
	// AccessProtected 受保护：必须有已解析的非匿名身份
	AccessProtected
)

// Handler 过程处理函数
// input 是已通过校验的强类型值（NewInput 的返回类型）；无输入的过程收到 nil
// 返回值必须可 JSON 序列化；"合法不存在"直接返回 (nil, nil)
type Handler func(c *Context, input any) (any, error)

// Procedure 一个具名远程过程的声明
type Procedure struct {
	Name     string
	Kind     Kind
	Access   Access
	NewInput func() any // 输入结构体工厂；nil 表示该过程不接受输入
	Handle   Handler
}

// Registry 过程注册表
// 启动时注册完毕后只读，并发调用无需加锁
type Registry struct {
	procedures map[string]*Procedure
}

// NewRegistry 构造空注册表
func NewRegistry() *Registry {
	return &Registry{procedures: make(map[string]*Procedure)}
}

// Register 注册过程；重名属于启动期配置错误，直接 panic
func (r *Registry) Register(p *Procedure) {
	if _, exists := r.procedures[p.Name]; exists {
		panic(fmt.Sprintf("rpc: duplicate procedure %q", p.Name))
	}
	r.procedures[p.Name] = p
}

// Names 已注册的过程名（日志/调试用）
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.procedures))
	for name := range r.procedures {
		names = append(names, name)
	}
	return names
}

// Invoke 调用一个过程，严格按以下顺序：
//  1. 按名称查找 —— 未知名称返回 NotFound
//  2. 鉴权 —— 受保护过程 + 匿名调用者直接 Unauthorized，
//     不跑校验也不跑 handler（避免向未认证方泄露输入 schema）
//  3. 解析 + 校验输入 —— 失败返回 BadInput（逐字段信息）
//  4. 执行 handler，结果/错误原样上抛
//
// ⚠️ 鉴权先于校验是有意为之，不要调换
func (r *Registry) Invoke(c *Context, name string, payload json.RawMessage) (any, error) {
	p, ok := r.procedures[name]
	if !ok {
		return nil, NewError(CodeNotFound, fmt.Sprintf("unknown procedure %q", name))
	}

	if p.Access == AccessProtected && !c.Authenticated() {
		return nil, NewError(CodeUnauthorized, domainErrors.ErrUnauthorized.Error())
	}

	var input any
	if p.NewInput != nil {
		input = p.NewInput()
		if err := decodeAndValidate(payload, input); err != nil {
			return nil, err
		}
	}

	return p.Handle(c, input)
}
