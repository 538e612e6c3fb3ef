package repository

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/user/streamlens/internal/model"
	"github.com/user/streamlens/internal/store"
	"gorm.io/gorm"
)

// CatalogRepository 从 Postgres 加载目录数据
// 表结构由清洗流水线维护：contents（每个平台每个标题一行）+ interactions（评分三元组）
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建目录仓库
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// LoadCatalog 整表读入并构建不可变目录，语义与 CSV 加载器一致
func (r *CatalogRepository) LoadCatalog() (*store.Catalog, error) {
	platforms := make(map[string]*store.Platform)

	rows, err := r.db.Raw(`
		SELECT platform, content_id, title, type, release_year, country,
		       "cast", date_added, classification, score, duration_int, duration_type
		FROM contents
		ORDER BY platform, row_order
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var rec model.ContentRecord
		var country, dateAdded, durationType sql.NullString
		var score sql.NullFloat64

		if err := rows.Scan(
			&platform, &rec.ID, &rec.Title, &rec.Kind, &rec.ReleaseYear, &country,
			pq.Array(&rec.Cast), &dateAdded, &rec.Classification, &score,
			&rec.DurationValue, &durationType,
		); err != nil {
			return nil, err
		}
		rec.Country = country.String
		rec.DateAdded = dateAdded.String
		rec.DurationUnit = durationType.String
		if score.Valid {
			v := score.Float64
			rec.Score = &v
		}

		p, ok := platforms[platform]
		if !ok {
			p = &store.Platform{Key: platform}
			platforms[platform] = p
		}
		p.Contents = append(p.Contents, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadInteractions(platforms); err != nil {
		return nil, err
	}

	return store.NewCatalog(platforms), nil
}

// loadInteractions 加载评分三元组，顺序与清洗流水线写入顺序一致
func (r *CatalogRepository) loadInteractions(platforms map[string]*store.Platform) error {
	rows, err := r.db.Raw(`
		SELECT platform, user_id, title, rating
		FROM interactions
		ORDER BY platform, row_order
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var it model.Interaction
		if err := rows.Scan(&platform, &it.UserID, &it.Title, &it.Rating); err != nil {
			return err
		}
		if p, ok := platforms[platform]; ok {
			p.Interactions = append(p.Interactions, it)
		}
	}
	return rows.Err()
}
