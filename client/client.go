// Package client 是过程调用的客户端桥接层：
// 把每个已注册过程暴露为与服务端同类型出入参的可调用方法，
// 支持直接等待式调用和预取/水合两种模式
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"fullstack-go-server/api/controller"
	"fullstack-go-server/api/procedures"
	"fullstack-go-server/domain/entity"
	"fullstack-go-server/usecase"
)

// Client 过程调用客户端
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option 客户端可选配置
type Option func(*Client)

// WithToken 设置 Clerk 会话 Token（匿名调用可不设）
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient 替换底层 HTTP 客户端（超时/代理由调用方控制）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New 构造客户端；baseURL 形如 http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call 发起一次过程调用并把结果解到 out（out 为 nil 时丢弃结果）
// 非 200 响应解析错误信封，返回服务端的 *rpc.Error
func (c *Client) call(ctx context.Context, procedure string, input any, out any) error {
	payload := []byte("{}")
	if input != nil {
		var err error
		payload, err = json.Marshal(input)
		if err != nil {
			return fmt.Errorf("marshal input for %s: %w", procedure, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/rpc/"+procedure, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var envelope controller.ErrorEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
			return fmt.Errorf("procedure %s failed with status %d", procedure, resp.StatusCode)
		}
		return envelope.Error
	}

	// 只取信封里的 result；out 为 nil 表示调用方不关心返回值
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response of %s: %w", procedure, err)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Result, out)
}

// --- 类型化过程表面 ---

// PostHello post.hello（公开查询）
func (c *Client) PostHello(ctx context.Context, in *procedures.HelloInput) (*procedures.HelloOutput, error) {
	var out procedures.HelloOutput
	if err := c.call(ctx, "post.hello", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostCreate post.create（受保护变更）
func (c *Client) PostCreate(ctx context.Context, in *procedures.CreatePostInput) (*procedures.PostView, error) {
	var out procedures.PostView
	if err := c.call(ctx, "post.create", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostGetLatest post.getLatest（公开查询）；没有帖子时返回 nil, nil
func (c *Client) PostGetLatest(ctx context.Context) (*procedures.PostView, error) {
	var out *procedures.PostView
	if err := c.call(ctx, "post.getLatest", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostGetAll post.getAll（公开查询），最新在前
func (c *Client) PostGetAll(ctx context.Context) ([]*procedures.PostView, error) {
	var out []*procedures.PostView
	if err := c.call(ctx, "post.getAll", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostGetUserPosts post.getUserPosts（受保护查询），当前用户自己的帖子
func (c *Client) PostGetUserPosts(ctx context.Context) ([]*procedures.PostView, error) {
	var out []*procedures.PostView
	if err := c.call(ctx, "post.getUserPosts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserGetProfile user.getProfile（受保护查询），本地不存在时自动创建
func (c *Client) UserGetProfile(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := c.call(ctx, "user.getProfile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserUpdateProfile user.updateProfile（受保护变更）
func (c *Client) UserUpdateProfile(ctx context.Context, in *procedures.UpdateProfileInput) (*entity.User, error) {
	var out entity.User
	if err := c.call(ctx, "user.updateProfile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserGetStats user.getStats（受保护查询）
func (c *Client) UserGetStats(ctx context.Context) (*usecase.UserStats, error) {
	var out usecase.UserStats
	if err := c.call(ctx, "user.getStats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
