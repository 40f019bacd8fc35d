package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"fullstack-go-server/api/controller"
	"fullstack-go-server/api/middleware"
	"fullstack-go-server/api/procedures"
	"fullstack-go-server/domain/entity"
	"fullstack-go-server/internal/rpc"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// ========== 客户端桥接层测试 ==========
// 起一个真实的 gin + 注册表测试服务器，身份解析换成测试中间件
// （Token == "good-token" 视为已认证），验证信封解析和两种调用模式

const testToken = "good-token"

func newTestServer(t *testing.T, setup func(reg *rpc.Registry)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := rpc.NewRegistry()
	setup(registry)
	rpcController := controller.NewRPCController(registry)

	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") == "Bearer "+testToken {
			c.Set(middleware.ContextKeyIdentity, &entity.Identity{
				ID:        "user_client",
				Email:     "c@example.com",
				CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			})
		}
		c.Next()
	})
	api.POST("/rpc/:procedure", rpcController.Invoke)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// registerHello post.hello 的真实声明形状
func registerHello(reg *rpc.Registry) {
	reg.Register(&rpc.Procedure{
		Name:     "post.hello",
		Kind:     rpc.KindQuery,
		Access:   rpc.AccessPublic,
		NewInput: func() any { return &procedures.HelloInput{} },
		Handle: func(c *rpc.Context, input any) (any, error) {
			in := input.(*procedures.HelloInput)
			return &procedures.HelloOutput{Greeting: "Hello " + in.Text}, nil
		},
	})
}

// TestClient_PostHello 等待式调用的完整往返
func TestClient_PostHello(t *testing.T) {
	srv := newTestServer(t, registerHello)
	c := New(srv.URL)

	out, err := c.PostHello(context.Background(), &procedures.HelloInput{Text: "from client"})

	assert.NoError(t, err)
	assert.Equal(t, "Hello from client", out.Greeting)
}

// TestClient_ProtectedWithoutToken 匿名调用受保护过程拿到结构化 Unauthorized
func TestClient_ProtectedWithoutToken(t *testing.T) {
	srv := newTestServer(t, func(reg *rpc.Registry) {
		reg.Register(&rpc.Procedure{
			Name:     "post.create",
			Kind:     rpc.KindMutation,
			Access:   rpc.AccessProtected,
			NewInput: func() any { return &procedures.CreatePostInput{} },
			Handle: func(c *rpc.Context, input any) (any, error) {
				t.Fatal("handler must not run")
				return nil, nil
			},
		})
	})
	c := New(srv.URL) // 不带 Token

	out, err := c.PostCreate(context.Background(), &procedures.CreatePostInput{Name: "x"})

	assert.Nil(t, out)
	var rpcErr *rpc.Error
	assert.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, rpc.CodeUnauthorized, rpcErr.Code)
}

// TestClient_BadInputFieldErrors 校验失败的逐字段信息穿透到客户端
func TestClient_BadInputFieldErrors(t *testing.T) {
	srv := newTestServer(t, func(reg *rpc.Registry) {
		reg.Register(&rpc.Procedure{
			Name:     "post.create",
			Kind:     rpc.KindMutation,
			Access:   rpc.AccessProtected,
			NewInput: func() any { return &procedures.CreatePostInput{} },
			Handle: func(c *rpc.Context, input any) (any, error) {
				t.Fatal("handler must not run")
				return nil, nil
			},
		})
	})
	c := New(srv.URL, WithToken(testToken))

	_, err := c.PostCreate(context.Background(), &procedures.CreatePostInput{Name: ""})

	var rpcErr *rpc.Error
	assert.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, rpc.CodeBadInput, rpcErr.Code)
	assert.Contains(t, rpcErr.Fields, "name")
}

// TestClient_ProtectedWithToken 带 Token 的调用到达 handler 并拿到身份
func TestClient_ProtectedWithToken(t *testing.T) {
	srv := newTestServer(t, func(reg *rpc.Registry) {
		reg.Register(&rpc.Procedure{
			Name:   "post.getUserPosts",
			Kind:   rpc.KindQuery,
			Access: rpc.AccessProtected,
			Handle: func(c *rpc.Context, input any) (any, error) {
				return []*procedures.PostView{
					{ID: "p1", Name: "mine", AuthorID: c.Identity.ID},
				}, nil
			},
		})
	})
	c := New(srv.URL, WithToken(testToken))

	posts, err := c.PostGetUserPosts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "user_client", posts[0].AuthorID)
}

// TestClient_GetLatestNull result 为 null 时返回 nil, nil
func TestClient_GetLatestNull(t *testing.T) {
	srv := newTestServer(t, func(reg *rpc.Registry) {
		reg.Register(&rpc.Procedure{
			Name:   "post.getLatest",
			Kind:   rpc.KindQuery,
			Access: rpc.AccessPublic,
			Handle: func(c *rpc.Context, input any) (any, error) {
				return nil, nil
			},
		})
	})
	c := New(srv.URL)

	post, err := c.PostGetLatest(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, post)
}

// TestClient_PrefetchHydrate 预取/水合：调用先发出去，Hydrate 时才取结果
// 对应首页的 getLatest 预取路径
func TestClient_PrefetchHydrate(t *testing.T) {
	invoked := make(chan struct{})
	srv := newTestServer(t, func(reg *rpc.Registry) {
		registerHello(reg)
		reg.Register(&rpc.Procedure{
			Name:   "post.getLatest",
			Kind:   rpc.KindQuery,
			Access: rpc.AccessPublic,
			Handle: func(c *rpc.Context, input any) (any, error) {
				close(invoked)
				return &procedures.PostView{ID: "p1", Name: "latest"}, nil
			},
		})
	})
	c := New(srv.URL)

	// 先预取（不等待），再做"关键路径"上的等待式调用
	prefetch := c.Prefetch(context.Background(), "post.getLatest", nil)
	hello, err := c.PostHello(context.Background(), &procedures.HelloInput{Text: "page"})
	assert.NoError(t, err)
	assert.Equal(t, "Hello page", hello.Greeting)

	// 预取确实已经发出
	select {
	case <-invoked:
	case <-time.After(2 * time.Second):
		t.Fatal("prefetch never reached the server")
	}

	// 渲染完成后水合
	var post *procedures.PostView
	assert.NoError(t, prefetch.Hydrate(&post))
	assert.Equal(t, "p1", post.ID)

	// 同一句柄可重复水合同一结果（一次调用，多次读取）
	var again *procedures.PostView
	assert.NoError(t, prefetch.Hydrate(&again))
	assert.Equal(t, "p1", again.ID)
}

// TestClient_PrefetchError 预取出错时错误保留到 Hydrate
func TestClient_PrefetchError(t *testing.T) {
	srv := newTestServer(t, func(reg *rpc.Registry) {})
	c := New(srv.URL)

	prefetch := c.Prefetch(context.Background(), "no.such.procedure", nil)

	err := prefetch.Hydrate(nil)
	var rpcErr *rpc.Error
	assert.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, rpc.CodeNotFound, rpcErr.Code)
}
