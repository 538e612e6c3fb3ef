package model

// 内容类型（清洗流水线输出的 type 列）
const (
	KindMovie = "movie"
	KindShow  = "tv show"
)

// 时长单位
const (
	UnitMin     = "min"
	UnitSeason  = "season"
	UnitSeasons = "seasons"
)

// ContentRecord 目录内容记录（每个平台每个标题一行）
// 所有字符串字段在入库时已统一去空格并转小写
type ContentRecord struct {
	ID             string   `json:"id"`                // 平台首字母 + 源 show_id，平台内唯一
	Title          string   `json:"title"`
	Kind           string   `json:"type"`              // movie / tv show / 其他原始值
	ReleaseYear    int      `json:"release_year"`
	Country        string   `json:"country,omitempty"` // 可为空
	Cast           []string `json:"cast,omitempty"`    // 有序演员列表，可为空
	DateAdded      string   `json:"date_added,omitempty"` // 规范化为 YYYY-MM-DD
	Classification string   `json:"classification"`    // 观众分级标签，缺失补 g
	Score          *float64 `json:"score,omitempty"`   // 平均观众评分，可为空
	DurationValue  int      `json:"duration_int"`
	DurationUnit   string   `json:"duration_type"` // 电影为 min，剧集为 season(s)
}

// IsMovie 是否为电影
func (r *ContentRecord) IsMovie() bool {
	return r.Kind == KindMovie
}

// Interaction 用户评分记录（userId, title, rating 三元组）
type Interaction struct {
	UserID int     `json:"userId"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
}

// CountryYearCount prod_per_country 的结构化结果
// 字段名沿用上游约定（西语）
type CountryYearCount struct {
	Pais     string `json:"pais"`
	Anio     int    `json:"anio"`
	Cantidad int    `json:"cantidad"`
}
