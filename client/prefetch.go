package client

import (
	"context"
	"encoding/json"
)

// Prefetch 一次性预取句柄
// 典型用法：首屏渲染先把非关键查询发出去，渲染完成后再 Hydrate 取结果，
// 不阻塞关键路径（对应首页的 getLatest 预取）
// 没有缓存/失效策略：一个句柄只对应一次调用，Hydrate 可重复读同一结果
type Prefetch struct {
	done chan struct{}
	raw  json.RawMessage
	err  error
}

// Prefetch 发起一次不等待的过程调用
// 调用立刻在后台开始；错误保留到 Hydrate 时上抛
func (c *Client) Prefetch(ctx context.Context, procedure string, input any) *Prefetch {
	p := &Prefetch{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.err = c.call(ctx, procedure, input, &p.raw)
	}()
	return p
}

// Hydrate 等待预取完成并把结果解到 out（out 为 nil 只取错误）
func (p *Prefetch) Hydrate(out any) error {
	<-p.done
	if p.err != nil {
		return p.err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(p.raw, out)
}
