package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/streamlens/internal/middleware"
	"github.com/user/streamlens/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// ==================== 管理接口 ====================

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLogin 管理员登录，校验口令后签发 Bearer Token
func (h *Handler) AdminLogin(c *gin.Context) {
	if h.Config.AdminPasswordHash == "" {
		c.JSON(http.StatusForbidden, utils.ErrorBody{Detail: "管理登录未启用"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(h.Config.AdminPasswordHash), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "口令错误")
		return
	}

	token, err := middleware.GenerateToken("admin", "admin", h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "签发 Token 失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.Config.JWTExpiry.Seconds()),
	})
}

// AdminStats 数据与缓存统计
func (h *Handler) AdminStats(c *gin.Context) {
	catalog := h.Handle.Catalog()

	platforms := gin.H{}
	for _, key := range catalog.Platforms() {
		p, _ := catalog.Platform(key)
		platforms[key] = gin.H{
			"contents":        len(p.Contents),
			"interactions":    len(p.Interactions),
			"classifications": p.Classifications(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data_version":       catalog.Version(),
		"loaded_at":          catalog.LoadedAt().Format(time.RFC3339),
		"platforms":          platforms,
		"similarity_titles":  h.Handle.Similarity().Len(),
		"recommend_cache":    h.Recommender.CacheLen(),
		"predict_models":     h.Predictor.ModelCacheItems(),
		"total_contents":     catalog.TotalContents(),
		"total_interactions": catalog.TotalInteractions(),
	})
}

// AdminReload 重新加载数据并整体替换存储句柄
// 旧缓存键带数据版本会自然失效，这里仍主动清空以立即释放内存
func (h *Handler) AdminReload(c *gin.Context) {
	start := time.Now()

	catalog, similarity, err := h.reload()
	if err != nil {
		log.Printf("[Admin] 数据重载失败: %v", err)
		utils.InternalServerError(c, "数据重载失败: "+err.Error())
		return
	}

	h.Handle.Swap(catalog, similarity)
	h.Recommender.ClearCache()
	h.Predictor.ClearCache()

	log.Printf("[Admin] 数据重载完成: %d 条内容, %d 个标题, 耗时 %v",
		catalog.TotalContents(), similarity.Len(), time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"data_version":      catalog.Version(),
		"total_contents":    catalog.TotalContents(),
		"similarity_titles": similarity.Len(),
		"elapsed":           time.Since(start).String(),
	})
}

// AdminCacheClean 仅清空缓存，不重载数据
func (h *Handler) AdminCacheClean(c *gin.Context) {
	recommend := h.Recommender.CacheLen()
	models := h.Predictor.ModelCacheItems()

	h.Recommender.ClearCache()
	h.Predictor.ClearCache()

	c.JSON(http.StatusOK, gin.H{
		"cleaned_recommend": recommend,
		"cleaned_models":    models,
	})
}
