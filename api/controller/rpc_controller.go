package controller

import (
	"io"
	"net/http"

	"fullstack-go-server/api/middleware"
	"fullstack-go-server/domain/entity"
	"fullstack-go-server/internal/rpc"

	"github.com/gin-gonic/gin"
)

// --- 响应结构定义 ---
// 统一信封：成功 {"result": ...}，失败 {"error": {code, message, fields}}
// client 包按同一信封解析

// ResultEnvelope 成功响应信封
type ResultEnvelope struct {
	Result interface{} `json:"result"`
}

// ErrorEnvelope 失败响应信封
type ErrorEnvelope struct {
	Error *rpc.Error `json:"error"`
}

// --- 控制器定义 ---

// RPCController 过程调用 HTTP 控制器
// 所有过程走同一个端点，鉴权/校验/分发由注册表统一处理
type RPCController struct {
	registry *rpc.Registry
}

// NewRPCController 创建 RPCController 实例
func NewRPCController(registry *rpc.Registry) *RPCController {
	return &RPCController{registry: registry}
}

// Invoke 调用指定过程
// POST /api/rpc/:procedure
// 请求体 = 过程输入（JSON）；无输入过程可传空体
func (rc *RPCController) Invoke(c *gin.Context) {
	name := c.Param("procedure")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Error: rpc.NewError(rpc.CodeBadInput, "failed to read request body"),
		})
		return
	}

	// 每个请求构造一次显式调用上下文；中间件没放身份就是匿名
	rctx := &rpc.Context{Ctx: c.Request.Context()}
	if v, exists := c.Get(middleware.ContextKeyIdentity); exists {
		rctx.Identity = v.(*entity.Identity)
	}

	result, err := rc.registry.Invoke(rctx, name, body)
	if err != nil {
		rpcErr := rpc.FromError(err)
		c.JSON(rpcErr.HTTPStatus(), ErrorEnvelope{Error: rpcErr})
		return
	}

	c.JSON(http.StatusOK, ResultEnvelope{Result: result})
}
