package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/streamlens/internal/model"
	"github.com/user/streamlens/internal/store"
	"github.com/user/streamlens/internal/utils"
)

// RecommendService 基于相似度索引的内容推荐
type RecommendService struct {
	handle *store.Handle
	topK   int
	cache  *utils.ResultCache[[]string]
}

// NewRecommendService 创建推荐服务
func NewRecommendService(handle *store.Handle, topK int) *RecommendService {
	return &RecommendService{
		handle: handle,
		topK:   topK,
		// 推荐结果确定且矩阵只读，缓存命中即可直接返回
		cache: utils.NewResultCache[[]string](1000, time.Hour),
	}
}

// Similar 返回与给定标题最相似的 K 个其他标题
// 标题查找大小写不敏感、精确匹配；查无标题返回 ErrTitleNotFound
func (s *RecommendService) Similar(title string) ([]string, error) {
	idx := s.handle.Similarity()

	row, ok := idx.Lookup(title)
	if !ok {
		return nil, ErrTitleNotFound
	}

	// 缓存键带数据版本，重载后旧结果自然失效
	cacheKey := fmt.Sprintf("%d:%s", s.handle.Catalog().Version(), strings.ToLower(title))
	if cached, found := s.cache.Get(cacheKey); found {
		return cached, nil
	}

	similar := idx.TopK(row, s.topK)
	titles := make([]string, len(similar))
	for i, st := range similar {
		titles[i] = st.Title
	}

	s.cache.Set(cacheKey, titles)
	return titles, nil
}

// SimilarScored 带分数的相似结果（管理与调试用途）
func (s *RecommendService) SimilarScored(title string) ([]model.SimilarTitle, error) {
	idx := s.handle.Similarity()
	row, ok := idx.Lookup(title)
	if !ok {
		return nil, ErrTitleNotFound
	}
	return idx.TopK(row, s.topK), nil
}

// CacheLen 当前缓存条数
func (s *RecommendService) CacheLen() int {
	return s.cache.Len()
}

// ClearCache 清空推荐缓存
func (s *RecommendService) ClearCache() {
	s.cache.Clear()
}
