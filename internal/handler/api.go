package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/streamlens/internal/service"
	"github.com/user/streamlens/internal/utils"
)

// ==================== 目录查询 API ====================

// bindError 把绑定校验失败转成可读的 detail 文案
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, strings.ToLower(fe.Field())+": "+fe.Tag())
		}
		return "invalid query parameters (" + strings.Join(parts, "; ") + ")"
	}
	return err.Error()
}

// queryError 把服务层错误映射为 HTTP 响应
// detail 文案直接取自哨兵错误，与上游 API 逐字一致
func (h *Handler) queryError(c *gin.Context, err error) {
	var invalid *service.InvalidClassificationError
	if errors.As(err, &invalid) {
		utils.BadRequest(c, invalid.Error())
		return
	}
	utils.NotFound(c, err.Error())
}

// 数值参数用指针绑定：gin 的 required 校验把零值当缺失，
// 而 0 是合法输入（年份、阈值），指针区分「传了 0」和「没传」
type maxDurationQuery struct {
	Year         *int   `form:"year" binding:"required"`
	DurationType string `form:"duration_type" binding:"required"`
}

// GetMaxDuration 指定年份与时长单位下时长最大的电影
func (h *Handler) GetMaxDuration(c *gin.Context) {
	var q maxDurationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	title, err := h.Query.MaxDurationTitle(c.Param("platform"), *q.Year, q.DurationType)
	if err != nil {
		h.queryError(c, err)
		return
	}
	utils.Text(c, title)
}

type scoreCountQuery struct {
	Scored *float64 `form:"scored" binding:"required"`
	Year   *int     `form:"year" binding:"required"`
}

// GetScoreCount 指定年份中评分不低于阈值的电影数量
func (h *Handler) GetScoreCount(c *gin.Context) {
	var q scoreCountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	count, err := h.Query.ScoreCount(c.Param("platform"), *q.Scored, *q.Year)
	if err != nil {
		h.queryError(c, err)
		return
	}
	utils.JSON(c, count)
}

// GetCountPlatform 平台电影总数，零是合法结果
func (h *Handler) GetCountPlatform(c *gin.Context) {
	count, err := h.Query.CountPlatform(c.Param("platform"))
	if err != nil {
		h.queryError(c, err)
		return
	}
	utils.JSON(c, count)
}

type actorQuery struct {
	Year *int `form:"year" binding:"required"`
}

// GetActor 指定年份出现次数最多的演员
func (h *Handler) GetActor(c *gin.Context) {
	var q actorQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	actor, err := h.Query.MostFrequentActor(c.Param("platform"), *q.Year)
	if err != nil {
		h.queryError(c, err)
		return
	}
	utils.JSON(c, actor)
}

type prodPerCountryQuery struct {
	Tipo string `form:"tipo" binding:"required"`
	Pais string `form:"pais" binding:"required"`
	Anio *int   `form:"anio" binding:"required"`
}

// ProdPerCountry 按内容类型、国家、年份计数
func (h *Handler) ProdPerCountry(c *gin.Context) {
	var q prodPerCountryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	result, err := h.Query.ProdPerCountry(c.Param("platform"), q.Tipo, q.Pais, *q.Anio)
	if err != nil {
		h.queryError(c, err)
		return
	}
	utils.JSON(c, result)
}

type contentsQuery struct {
	Rating string `form:"rating" binding:"required"`
}

// GetContents 按分级标签计数
func (h *Handler) GetContents(c *gin.Context) {
	var q contentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	count, err := h.Query.ContentsByClassification(c.Param("platform"), q.Rating)
	if err != nil {
		h.queryError(c, err)
		return
	}
	utils.JSON(c, count)
}

// ==================== 推荐与预测 API ====================

// Recommend 返回与给定标题最相似的 K 个标题
// 兼容模式下查无标题返回 200 + 旧版哨兵文案，默认返回结构化 404
func (h *Handler) Recommend(c *gin.Context) {
	title := c.Param("title")

	titles, err := h.Recommender.Similar(title)
	if err != nil {
		if errors.Is(err, service.ErrTitleNotFound) && h.Config.RecommendCompat {
			utils.Text(c, "Película no encontrada")
			return
		}
		utils.NotFound(c, err.Error())
		return
	}
	utils.JSON(c, titles)
}

// Predict 返回用户预计评分最高的至多 5 个未评分标题
func (h *Handler) Predict(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.BadRequest(c, "user_id must be an integer")
		return
	}

	titles, err := h.Predictor.TopUnrated(c.Param("platform"), userID)
	if err != nil {
		h.queryError(c, err)
		return
	}
	utils.JSON(c, titles)
}
