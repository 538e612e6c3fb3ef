package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/streamlens/internal/config"
	"github.com/user/streamlens/internal/handler"
	"github.com/user/streamlens/internal/middleware"
	"github.com/user/streamlens/internal/repository"
	"github.com/user/streamlens/internal/router"
	"github.com/user/streamlens/internal/store"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	// 按数据来源选择加载方式：CSV 产物或 Postgres
	load := csvLoader(cfg)
	if cfg.CatalogSource == "postgres" {
		db, err := repository.InitDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("数据库连接失败: %v", err)
		}
		sqlDB, _ := db.DB()
		defer sqlDB.Close()

		load = postgresLoader(repository.NewRepositories(db))
	}

	// 启动时构建一次，之后只读
	catalog, similarity, err := load()
	if err != nil {
		log.Fatalf("数据加载失败: %v", err)
	}
	handle := store.NewHandle(catalog, similarity)

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 加载模板（使用 multitemplate 解决继承问题）
	r.HTMLRender = router.LoadTemplates("./web/templates")

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.Security())
	r.Use(middleware.CORS())

	// 初始化 Handler
	h := handler.NewHandler(cfg, handle, load)

	// 注册路由
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second, // 预测端点首个请求要构建模型，给足写超时
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}

// csvLoader 从清洗产物目录加载目录与相似度索引
func csvLoader(cfg *config.Config) handler.ReloadFunc {
	return func() (*store.Catalog, *store.SimilarityIndex, error) {
		catalog, err := store.Load(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		similarity, err := store.LoadSimilarity(cfg.ModelDir)
		if err != nil {
			return nil, nil, err
		}
		return catalog, similarity, nil
	}
}

// postgresLoader 从数据库加载，语义与 CSV 路径一致
func postgresLoader(repos *repository.Repositories) handler.ReloadFunc {
	return func() (*store.Catalog, *store.SimilarityIndex, error) {
		catalog, err := repos.Catalog.LoadCatalog()
		if err != nil {
			return nil, nil, err
		}
		similarity, err := repos.Similarity.LoadIndex()
		if err != nil {
			return nil, nil, err
		}
		return catalog, similarity, nil
	}
}
