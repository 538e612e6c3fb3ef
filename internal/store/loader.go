package store

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/streamlens/internal/model"
	"golang.org/x/sync/errgroup"
)

// platformFiles 平台 key -> 源文件名与 ID 前缀
// ID 前缀取自上游清洗约定：平台名首字母 + show_id
var platformFiles = []struct {
	Key    string
	File   string
	Prefix string
}{
	{"amazon_prime", "amazon_prime_titles.csv", "a"},
	{"hulu", "hulu_titles.csv", "h"},
	{"netflix", "netflix_titles.csv", "n"},
	{"disney_plus", "disney_plus_titles.csv", "d"},
}

// ratingRow 评分表的一行
type ratingRow struct {
	UserID  int
	Rating  float64
	MovieID string
}

// Load 启动时执行一次完整的加载流程：
// 1. 读取评分总表
// 2. 并发读取并清洗四个平台的标题表
// 3. 按生成的 movieId 与评分表内连接，产出目录与交互数据
func Load(dataDir string) (*Catalog, error) {
	start := time.Now()

	ratings, err := loadRatings(filepath.Join(dataDir, "ratings.csv"))
	if err != nil {
		return nil, fmt.Errorf("加载评分表失败: %w", err)
	}

	platforms := make(map[string]*Platform, len(platformFiles))
	var mu sync.Mutex

	var g errgroup.Group
	for _, pf := range platformFiles {
		pf := pf
		g.Go(func() error {
			p, err := loadPlatform(filepath.Join(dataDir, pf.File), pf.Key, pf.Prefix, ratings)
			if err != nil {
				return fmt.Errorf("加载平台 %s 失败: %w", pf.Key, err)
			}
			mu.Lock()
			platforms[pf.Key] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := NewCatalog(platforms)
	log.Printf("[Store] 目录加载完成: %d 个平台, %d 条内容, %d 条评分, 耗时 %v",
		len(platforms), catalog.TotalContents(), catalog.TotalInteractions(), time.Since(start))
	return catalog, nil
}

// loadRatings 读取评分总表 (userId, rating, movieId)，按 movieId 建索引
func loadRatings(path string) (map[string][]ratingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := headerIndex(header)
	iUser, iRating, iMovie := col["userid"], col["rating"], col["movieid"]

	byMovie := make(map[string][]ratingRow)
	for {
		rec, err := r.Read()
		if err != nil {
			break
		}
		userID, err := strconv.Atoi(clean(rec[iUser]))
		if err != nil {
			continue
		}
		rating, err := strconv.ParseFloat(clean(rec[iRating]), 64)
		if err != nil {
			continue
		}
		movieID := clean(rec[iMovie])
		byMovie[movieID] = append(byMovie[movieID], ratingRow{
			UserID:  userID,
			Rating:  rating,
			MovieID: movieID,
		})
	}
	return byMovie, nil
}

// loadPlatform 读取单个平台的标题表并完成清洗与合并
func loadPlatform(path, key, prefix string, ratings map[string][]ratingRow) (*Platform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := headerIndex(header)

	p := &Platform{Key: key}
	unitMismatch := 0

	for {
		rec, err := r.Read()
		if err != nil {
			break
		}

		get := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(rec) {
				return ""
			}
			return clean(rec[idx])
		}

		year, _ := strconv.Atoi(get("release_year"))
		durationValue, durationUnit := splitDuration(get("duration"))

		record := model.ContentRecord{
			ID:             prefix + get("show_id"),
			Title:          get("title"),
			Kind:           get("type"),
			ReleaseYear:    year,
			Country:        get("country"),
			Cast:           splitCast(get("cast")),
			DateAdded:      normalizeDate(get("date_added")),
			Classification: get("rating"),
			DurationValue:  durationValue,
			DurationUnit:   durationUnit,
		}
		// 分级缺失统一补 g（上游清洗约定）
		if record.Classification == "" {
			record.Classification = "g"
		}

		// 与评分表内连接：没有任何评分的标题不进入目录
		rows, ok := ratings[record.ID]
		if !ok {
			continue
		}

		var sum float64
		for _, row := range rows {
			sum += row.Rating
			p.Interactions = append(p.Interactions, model.Interaction{
				UserID: row.UserID,
				Title:  record.Title,
				Rating: row.Rating,
			})
		}
		mean := sum / float64(len(rows))
		record.Score = &mean

		// 时长单位与内容类型的一致性只检查不拦截（已知的上游宽松点）
		if record.Kind == model.KindMovie && record.DurationUnit != "" && record.DurationUnit != model.UnitMin {
			unitMismatch++
		}

		p.Contents = append(p.Contents, record)
	}

	if unitMismatch > 0 {
		log.Printf("[Store] 平台 %s 有 %d 条电影的时长单位不是 min", key, unitMismatch)
	}
	return p, nil
}

// headerIndex 列名（小写）-> 下标
func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}

// clean 去空格并转小写（上游对所有字符串单元格做同样处理）
func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// splitCast 演员列按 ", " 拆分为有序列表
func splitCast(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	cast := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			cast = append(cast, name)
		}
	}
	return cast
}

// splitDuration 把 "90 min" / "2 seasons" 拆成数值与单位
func splitDuration(s string) (int, string) {
	if s == "" {
		return 0, ""
	}
	fields := strings.Fields(s)
	value, err := strconv.Atoi(fields[0])
	if err != nil {
		// 个别源数据带小数，截断取整
		if fv, ferr := strconv.ParseFloat(fields[0], 64); ferr == nil {
			value = int(fv)
		} else {
			return 0, ""
		}
	}
	unit := ""
	if len(fields) > 1 {
		unit = fields[1]
	}
	return value, unit
}

// dateLayouts 源数据中出现过的日期格式
var dateLayouts = []string{
	"January 2, 2006",
	"2006-01-02",
}

// normalizeDate 统一日期为 YYYY-MM-DD，解析失败保留原值
func normalizeDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		// 源数据已转小写，月份名需要还原首字母再解析
		if t, err := time.Parse(layout, titleCaseMonth(s)); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// titleCaseMonth 把 "september 25, 2021" 的月份还原为 "September 25, 2021"
func titleCaseMonth(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
