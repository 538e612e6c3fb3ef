package repository

import (
	"math"

	"github.com/user/streamlens/internal/model"
	"github.com/user/streamlens/internal/store"
	"gorm.io/gorm"
)

// SimilarityRepository 从 Postgres 的 pgvector 列加载标题向量
// 离线模型步骤在 Postgres 模式下写 title_embeddings 表而非平面产物
type SimilarityRepository struct {
	db *gorm.DB
}

// NewSimilarityRepository 创建相似度仓库
func NewSimilarityRepository(db *gorm.DB) *SimilarityRepository {
	return &SimilarityRepository{db: db}
}

// LoadIndex 读取全部标题向量，在内存中计算两两余弦相似度并构建索引
// 与平面产物路径产出同一种 SimilarityIndex，服务层无感知
func (r *SimilarityRepository) LoadIndex() (*store.SimilarityIndex, error) {
	var rows []model.TitleEmbedding
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(rows))
	vectors := make([][]float32, 0, len(rows))
	for _, row := range rows {
		if row.Embedding == nil {
			continue
		}
		titles = append(titles, row.Title)
		vectors = append(vectors, row.Embedding.Slice())
	}

	matrix := make([][]float64, len(vectors))
	for i := range vectors {
		matrix[i] = make([]float64, len(vectors))
		for j := range vectors {
			matrix[i][j] = cosine(vectors[i], vectors[j])
		}
	}

	return store.NewSimilarityIndex(titles, matrix)
}

// FindSimilarTitles 直接用 pgvector 的余弦距离查询近邻（调试用途，不走内存索引）
func (r *SimilarityRepository) FindSimilarTitles(title string, limit int) ([]string, error) {
	var titles []string
	err := r.db.Raw(`
		SELECT t.title
		FROM title_embeddings t, (SELECT embedding FROM title_embeddings WHERE title = ?) q
		WHERE t.title <> ?
		ORDER BY t.embedding <=> q.embedding
		LIMIT ?
	`, title, title, limit).Scan(&titles).Error
	return titles, err
}

// cosine 两个向量的余弦相似度
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
