package service

import (
	"sort"

	"github.com/user/streamlens/internal/model"
	"github.com/user/streamlens/internal/store"
)

// QueryService 目录过滤查询：对不可变目录做纯读操作，无副作用
type QueryService struct {
	handle *store.Handle
}

// NewQueryService 创建查询服务
func NewQueryService(handle *store.Handle) *QueryService {
	return &QueryService{handle: handle}
}

// platform 解析平台分区，未知平台统一返回 ErrPlatformNotFound
func (s *QueryService) platform(key string) (*store.Platform, error) {
	p, ok := s.handle.Catalog().Platform(key)
	if !ok {
		return nil, ErrPlatformNotFound
	}
	return p, nil
}

// MaxDurationTitle 指定年份与时长单位下时长最大的电影标题
// 先校验年份过滤、再校验时长单位过滤（各自为空即报错，顺序与上游一致），
// 最后对组合结果按时长稳定降序排序取第一行
func (s *QueryService) MaxDurationTitle(platform string, year int, durationType string) (string, error) {
	p, err := s.platform(platform)
	if err != nil {
		return "", err
	}

	// 只看电影
	var movies []*model.ContentRecord
	for i := range p.Contents {
		if p.Contents[i].IsMovie() {
			movies = append(movies, &p.Contents[i])
		}
	}

	var yearMatch, unitMatch bool
	for _, m := range movies {
		if m.ReleaseYear == year {
			yearMatch = true
		}
		if m.DurationUnit == durationType {
			unitMatch = true
		}
	}
	if !yearMatch {
		return "", ErrNoMoviesForYear
	}
	if !unitMatch {
		return "", ErrNoDurationMatch
	}

	var candidates []*model.ContentRecord
	for _, m := range movies {
		if m.ReleaseYear == year && m.DurationUnit == durationType {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return "", ErrNoDurationMatch
	}

	// 稳定排序：时长相同保持目录原序，第一行胜出
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DurationValue > candidates[j].DurationValue
	})
	return candidates[0].Title, nil
}

// ScoreCount 指定年份中评分不低于阈值的电影数量
// 与上游一致：先分别校验年份过滤和评分过滤，任一为空即报错（有意的提前短路），
// 再校验组合过滤
func (s *QueryService) ScoreCount(platform string, scored float64, year int) (int, error) {
	p, err := s.platform(platform)
	if err != nil {
		return 0, err
	}

	var yearMatch, scoreMatch bool
	count := 0
	for i := range p.Contents {
		r := &p.Contents[i]
		if !r.IsMovie() {
			continue
		}
		inYear := r.ReleaseYear == year
		inScore := r.Score != nil && *r.Score >= scored
		if inYear {
			yearMatch = true
		}
		if inScore {
			scoreMatch = true
		}
		if inYear && inScore {
			count++
		}
	}

	if !yearMatch || !scoreMatch {
		return 0, ErrNoScoreMatch
	}
	if count == 0 {
		return 0, ErrNoScoreYearMatch
	}
	return count, nil
}

// CountPlatform 平台的电影总数，零是合法结果
func (s *QueryService) CountPlatform(platform string) (int, error) {
	p, err := s.platform(platform)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range p.Contents {
		if p.Contents[i].IsMovie() {
			count++
		}
	}
	return count, nil
}

// MostFrequentActor 指定年份出现次数最多的演员
// 年份过滤覆盖所有内容类型（不限电影，与上游一致）；
// 次数相同时按名字字典序取小者（显式的确定性平手规则）
func (s *QueryService) MostFrequentActor(platform string, year int) (string, error) {
	p, err := s.platform(platform)
	if err != nil {
		return "", err
	}

	counts := make(map[string]int)
	matched := false
	for i := range p.Contents {
		r := &p.Contents[i]
		if r.ReleaseYear != year {
			continue
		}
		matched = true
		for _, name := range r.Cast {
			counts[name]++
		}
	}
	if !matched {
		return "", ErrNoDataForYear
	}
	if len(counts) == 0 {
		return "", ErrNoActorData
	}

	best := ""
	bestCount := 0
	for name, n := range counts {
		if n > bestCount || (n == bestCount && name < best) {
			best = name
			bestCount = n
		}
	}
	return best, nil
}

// ProdPerCountry 按内容类型、国家、年份的精确匹配计数
func (s *QueryService) ProdPerCountry(platform, tipo, pais string, anio int) (*model.CountryYearCount, error) {
	p, err := s.platform(platform)
	if err != nil {
		return nil, err
	}

	count := 0
	for i := range p.Contents {
		r := &p.Contents[i]
		if r.Kind == tipo && r.ReleaseYear == anio && r.Country == pais {
			count++
		}
	}
	if count == 0 {
		return nil, ErrNoCountryMatch
	}

	return &model.CountryYearCount{
		Pais:     pais,
		Anio:     anio,
		Cantidad: count,
	}, nil
}

// ContentsByClassification 按分级标签计数（全部内容类型）
// 标签有效性按平台划定：该平台的分级列中从未出现过的标签视为非法输入
func (s *QueryService) ContentsByClassification(platform, rating string) (int, error) {
	p, err := s.platform(platform)
	if err != nil {
		return 0, err
	}

	if !p.HasClassification(rating) {
		return 0, &InvalidClassificationError{Rating: rating, Platform: platform}
	}

	count := 0
	for i := range p.Contents {
		if p.Contents[i].Classification == rating {
			count++
		}
	}
	return count, nil
}
