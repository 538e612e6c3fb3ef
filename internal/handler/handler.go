package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/streamlens/internal/config"
	"github.com/user/streamlens/internal/service"
	"github.com/user/streamlens/internal/store"
	"github.com/user/streamlens/internal/utils"
)

// ReloadFunc 重新执行数据加载，产出新的目录与相似度索引
// 具体实现由 main 按 CATALOG_SOURCE 注入（CSV 产物或 Postgres）
type ReloadFunc func() (*store.Catalog, *store.SimilarityIndex, error)

// Handler HTTP 处理器
type Handler struct {
	Config *config.Config
	Handle *store.Handle

	Query       *service.QueryService
	Recommender *service.RecommendService
	Predictor   *service.PredictService

	reload ReloadFunc
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, handle *store.Handle, reload ReloadFunc) *Handler {
	return &Handler{
		Config:      cfg,
		Handle:      handle,
		Query:       service.NewQueryService(handle),
		Recommender: service.NewRecommendService(handle, cfg.RecommendTopK),
		Predictor: service.NewPredictService(handle,
			cfg.PredictSliceLimit, cfg.PredictNeighbors, 5, cfg.ModelCacheTTL),
		reload: reload,
	}
}

// ==================== 公开页面 ====================

// Home 首页：列出全部查询端点的 HTML 页面
func (h *Handler) Home(c *gin.Context) {
	catalog := h.Handle.Catalog()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     "StreamLens - 流媒体目录查询",
		"Platforms": catalog.Platforms(),
		"Titles":    h.Handle.Similarity().Len(),
	})
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	catalog := h.Handle.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"platforms": len(catalog.Platforms()),
		"contents":  catalog.TotalContents(),
	})
}

// Platforms 已知平台及行数（接口发现辅助）
func (h *Handler) Platforms(c *gin.Context) {
	catalog := h.Handle.Catalog()

	type platformInfo struct {
		Platform     string `json:"platform"`
		Contents     int    `json:"contents"`
		Interactions int    `json:"interactions"`
	}
	list := make([]platformInfo, 0, len(catalog.Platforms()))
	for _, key := range catalog.Platforms() {
		p, _ := catalog.Platform(key)
		list = append(list, platformInfo{
			Platform:     key,
			Contents:     len(p.Contents),
			Interactions: len(p.Interactions),
		})
	}
	utils.JSON(c, list)
}
