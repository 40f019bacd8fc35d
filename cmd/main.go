package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"fullstack-go-server/api/controller"
	"fullstack-go-server/api/procedures"
	"fullstack-go-server/api/route"
	"fullstack-go-server/bootstrap"
	"fullstack-go-server/internal/rpc"
	"fullstack-go-server/repository"
	"fullstack-go-server/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("[Server] Fullstack Go Server 启动中...")

	// 加载环境变量
	env := bootstrap.LoadEnv()

	// 初始化 Clerk
	bootstrap.InitClerk()

	// 连接数据库
	db := bootstrap.NewDatabase(env.DatabaseURL)

	// 依赖注入 - Repository 层
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	// 依赖注入 - UseCase 层
	userUseCase := usecase.NewUserUseCase(userRepo, postRepo)
	postUseCase := usecase.NewPostUseCase(postRepo, userUseCase)

	// 过程注册表
	registry := rpc.NewRegistry()
	procedures.RegisterPostProcedures(registry, postUseCase)
	procedures.RegisterUserProcedures(registry, userUseCase)

	// 依赖注入 - Controller 层
	rpcController := controller.NewRPCController(registry)
	webhookController := controller.NewWebhookController(userUseCase, env.WebhookSecret)

	// 配置 Gin 路由
	router := gin.Default()

	// CORS 配置（Next.js 开发服务器 + 部署域名）
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 设置路由
	route.Setup(router, &route.Dependencies{
		RPCController:     rpcController,
		WebhookController: webhookController,
	})

	// 启动 HTTP 服务
	srv := &http.Server{
		Addr:    ":" + env.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[Server] 服务已启动: http://localhost:%s", env.Port)
		log.Printf("[Server] API 端点:")
		log.Printf("   GET  /health              - 健康检查")
		log.Printf("   POST /api/rpc/:procedure  - 过程调用")
		log.Printf("   POST /webhook/clerk       - Clerk Webhook")

		names := registry.Names()
		sort.Strings(names)
		log.Printf("[Server] 已注册过程:")
		for _, name := range names {
			log.Printf("   - %s", name)
		}

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] 服务启动失败: %v", err)
		}
	}()

	// 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] 收到停机信号，正在优雅关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[Server] 服务强制关闭: %v", err)
	}

	log.Println("[Server] 服务已安全停止")
}
