package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/streamlens/internal/handler"
	"github.com/user/streamlens/internal/middleware"
	"github.com/user/streamlens/internal/utils"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)

	// ==================== 公开页面 ====================
	r.GET("/", h.Home)
	r.GET("/platforms", h.Platforms)

	// ==================== 相似推荐 ====================
	r.GET("/recommend/:title", h.Recommend)
	r.GET("/similar/:title", h.Recommend)

	// ==================== 管理接口 ====================
	admin := r.Group("/admin")
	admin.POST("/login", h.AdminLogin)

	authed := admin.Group("")
	authed.Use(middleware.RequireAuth(h.Config.AppSecret))
	authed.Use(middleware.RequireAdmin())
	{
		authed.GET("/stats", h.AdminStats)
		authed.POST("/reload", h.AdminReload)
		authed.POST("/cache/clean", h.AdminCacheClean)
	}

	// ==================== 目录查询 ====================
	// 平台 key 从路径取，其余参数从查询串取
	p := r.Group("/:platform")
	{
		p.GET("/get_max_duration", h.GetMaxDuration)
		p.GET("/get_score_count", h.GetScoreCount)
		p.GET("/get_count_platform", h.GetCountPlatform)
		p.GET("/get_actor", h.GetActor)
		p.GET("/prod_per_country", h.ProdPerCountry)
		p.GET("/get_contents", h.GetContents)
		p.GET("/predict/:user_id", h.Predict)
	}

	// 未匹配的路由统一返回 JSON 404
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.ErrorBody{Detail: "Not Found"})
	})
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	pages := []string{"index"}
	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFiles(page+".html", assemble(viewPath)...)
	}

	return r
}
