package store

import (
	"sync/atomic"
)

// Handle 存储句柄：持有当前生效的目录与相似度索引
// 读路径无锁，管理端重载时整体替换指针
type Handle struct {
	catalog    atomic.Pointer[Catalog]
	similarity atomic.Pointer[SimilarityIndex]
}

// NewHandle 创建句柄
func NewHandle(c *Catalog, s *SimilarityIndex) *Handle {
	h := &Handle{}
	h.catalog.Store(c)
	h.similarity.Store(s)
	return h
}

// Catalog 当前目录
func (h *Handle) Catalog() *Catalog {
	return h.catalog.Load()
}

// Similarity 当前相似度索引
func (h *Handle) Similarity() *SimilarityIndex {
	return h.similarity.Load()
}

// Swap 原子替换为新加载的数据
func (h *Handle) Swap(c *Catalog, s *SimilarityIndex) {
	h.catalog.Store(c)
	h.similarity.Store(s)
}
