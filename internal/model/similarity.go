package model

import (
	"github.com/pgvector/pgvector-go"
)

// SimilarTitle 相似推荐结果中的一项
type SimilarTitle struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// TitleEmbedding Postgres 模式下的标题向量（离线模型步骤写入 pgvector 列）
type TitleEmbedding struct {
	ID        int              `json:"id" db:"id"`
	Title     string           `json:"title" db:"title" gorm:"uniqueIndex"`
	Embedding *pgvector.Vector `json:"embedding" db:"embedding" gorm:"type:vector(256)"`
}

// TableName gorm 表名
func (TitleEmbedding) TableName() string { return "title_embeddings" }
