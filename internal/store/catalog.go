package store

import (
	"sort"
	"time"

	"github.com/user/streamlens/internal/model"
)

// Platform 单个流媒体平台的数据分区（加载完成后只读）
type Platform struct {
	Key          string                // amazon_prime / hulu / netflix / disney_plus
	Contents     []model.ContentRecord // 每个标题一行，保持源文件顺序
	Interactions []model.Interaction   // (userId, title, rating)，按标题顺序展开

	classifications map[string]struct{} // 该平台出现过的分级标签
}

// HasClassification 分级标签是否在该平台出现过（有效性按平台划定）
func (p *Platform) HasClassification(label string) bool {
	_, ok := p.classifications[label]
	return ok
}

// Classifications 该平台的分级标签数（用于统计展示）
func (p *Platform) Classifications() int {
	return len(p.classifications)
}

// Catalog 目录存储：启动时构建一次，之后只读
// 重新加载会生成一个全新的 Catalog 并整体替换句柄
type Catalog struct {
	platforms map[string]*Platform
	version   int64 // 数据版本号，缓存键的一部分
	loadedAt  time.Time
}

// NewCatalog 从平台分区构建目录（测试与加载器共用）
func NewCatalog(platforms map[string]*Platform) *Catalog {
	for _, p := range platforms {
		p.classifications = make(map[string]struct{})
		for _, r := range p.Contents {
			if r.Classification != "" {
				p.classifications[r.Classification] = struct{}{}
			}
		}
	}
	now := time.Now()
	return &Catalog{
		platforms: platforms,
		version:   now.UnixNano(),
		loadedAt:  now,
	}
}

// Platform 按 key 获取平台分区
func (c *Catalog) Platform(key string) (*Platform, bool) {
	p, ok := c.platforms[key]
	return p, ok
}

// Platforms 已知平台 key 列表（字典序）
func (c *Catalog) Platforms() []string {
	keys := make([]string, 0, len(c.platforms))
	for k := range c.platforms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Version 数据版本号
func (c *Catalog) Version() int64 {
	return c.version
}

// LoadedAt 加载时间
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// TotalContents 全部平台的内容行数
func (c *Catalog) TotalContents() int {
	total := 0
	for _, p := range c.platforms {
		total += len(p.Contents)
	}
	return total
}

// TotalInteractions 全部平台的评分行数
func (c *Catalog) TotalInteractions() int {
	total := 0
	for _, p := range c.platforms {
		total += len(p.Interactions)
	}
	return total
}
