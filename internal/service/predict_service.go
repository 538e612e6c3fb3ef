package service

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/streamlens/internal/store"
	"golang.org/x/sync/singleflight"
)

// PredictService 基于用户的协同过滤评分预测
// 模型按 平台+数据版本 缓存，重载后自动失效；同平台的并发构建用 singleflight 合并
type PredictService struct {
	handle     *store.Handle
	sliceLimit int // 只取每个平台交互数据的前 N 行（限定计算成本的有意取舍）
	neighbors  int // KNN 近邻数
	topN       int

	models *cache.Cache
	sf     singleflight.Group
}

// NewPredictService 创建预测服务
func NewPredictService(handle *store.Handle, sliceLimit, neighbors, topN int, modelTTL time.Duration) *PredictService {
	return &PredictService{
		handle:     handle,
		sliceLimit: sliceLimit,
		neighbors:  neighbors,
		topN:       topN,
		models:     cache.New(modelTTL, 2*modelTTL),
	}
}

// cfModel 从交互切片构建的用户-物品模型
type cfModel struct {
	users      map[int]map[string]float64 // userID -> title -> rating
	means      map[int]float64            // 各用户的评分均值
	titles     []string                   // 切片中出现过的全部标题（去重）
	globalMean float64
}

// neighbor 目标用户的一个近邻
type neighbor struct {
	userID int
	sim    float64
}

// TopUnrated 返回目标用户预计评分最高的至多 topN 个未评分标题
func (s *PredictService) TopUnrated(platform string, userID int) ([]string, error) {
	p, ok := s.handle.Catalog().Platform(platform)
	if !ok {
		return nil, ErrPlatformNotFound
	}

	m, err := s.model(platform, p)
	if err != nil {
		return nil, err
	}

	rated := m.users[userID] // 未知用户为 nil，所有标题都是候选
	neighbors := m.topNeighbors(userID, s.neighbors)

	type scored struct {
		title string
		est   float64
	}
	candidates := make([]scored, 0, len(m.titles))
	for _, title := range m.titles {
		if _, seen := rated[title]; seen {
			continue
		}
		candidates = append(candidates, scored{
			title: title,
			est:   m.estimate(userID, title, neighbors),
		})
	}

	// 预计评分降序，相同分数按标题字典序，结果确定
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].est == candidates[j].est {
			return candidates[i].title < candidates[j].title
		}
		return candidates[i].est > candidates[j].est
	})
	if len(candidates) > s.topN {
		candidates = candidates[:s.topN]
	}

	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.title
	}
	return titles, nil
}

// model 获取（或构建）平台的 CF 模型
func (s *PredictService) model(platform string, p *store.Platform) (*cfModel, error) {
	key := fmt.Sprintf("%s:%d", platform, s.handle.Catalog().Version())
	if cached, found := s.models.Get(key); found {
		return cached.(*cfModel), nil
	}

	// 并发请求同一平台时只构建一次
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if cached, found := s.models.Get(key); found {
			return cached, nil
		}
		start := time.Now()
		m := buildModel(p, s.sliceLimit)
		s.models.SetDefault(key, m)
		log.Printf("[Predict] 平台 %s 模型构建完成: %d 个用户, %d 个标题, 耗时 %v",
			platform, len(m.users), len(m.titles), time.Since(start))
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cfModel), nil
}

// ModelCacheItems 缓存中的模型数
func (s *PredictService) ModelCacheItems() int {
	return s.models.ItemCount()
}

// ClearCache 清空模型缓存
func (s *PredictService) ClearCache() {
	s.models.Flush()
}

// buildModel 从交互切片构建模型：用户评分表、用户均值、全局均值与标题全集
func buildModel(p *store.Platform, sliceLimit int) *cfModel {
	rows := p.Interactions
	if len(rows) > sliceLimit {
		rows = rows[:sliceLimit]
	}

	users := make(map[int]map[string]float64)
	titleSet := make(map[string]struct{})
	var sum float64
	for _, row := range rows {
		ratings, ok := users[row.UserID]
		if !ok {
			ratings = make(map[string]float64)
			users[row.UserID] = ratings
		}
		ratings[row.Title] = row.Rating
		titleSet[row.Title] = struct{}{}
		sum += row.Rating
	}

	means := make(map[int]float64, len(users))
	for u, ratings := range users {
		var s float64
		for _, r := range ratings {
			s += r
		}
		means[u] = s / float64(len(ratings))
	}

	titles := make([]string, 0, len(titleSet))
	for t := range titleSet {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	globalMean := 0.0
	if len(rows) > 0 {
		globalMean = sum / float64(len(rows))
	}

	return &cfModel{
		users:      users,
		means:      means,
		titles:     titles,
		globalMean: globalMean,
	}
}

// topNeighbors 目标用户的前 K 个余弦相似近邻
// 相似度相同按用户 ID 升序，保证结果确定
func (m *cfModel) topNeighbors(userID, k int) []neighbor {
	target := m.users[userID]
	if len(target) == 0 {
		return nil
	}

	all := make([]neighbor, 0, len(m.users))
	for v, ratings := range m.users {
		if v == userID {
			continue
		}
		if sim := cosineSimilarity(target, ratings); sim > 0 {
			all = append(all, neighbor{userID: v, sim: sim})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].sim == all[j].sim {
			return all[i].userID < all[j].userID
		}
		return all[i].sim > all[j].sim
	})
	if len(all) > k {
		all = all[:k]
	}
	return all
}

// estimate 估计 userID 对 title 的评分：
// 以目标用户均值为基线，近邻中评过该标题者按相似度加权修正（均值中心化），
// 结果截断到 [0, 5] 的评分范围
func (m *cfModel) estimate(userID int, title string, neighbors []neighbor) float64 {
	base, ok := m.means[userID]
	if !ok {
		base = m.globalMean
	}

	var num, den float64
	for _, nb := range neighbors {
		if rv, rated := m.users[nb.userID][title]; rated {
			num += nb.sim * (rv - m.means[nb.userID])
			den += math.Abs(nb.sim)
		}
	}

	est := base
	if den > 0 {
		est = base + num/den
	}
	if est > 5 {
		est = 5
	}
	if est < 0 {
		est = 0
	}
	return est
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for item, ra := range a {
		if rb, ok := b[item]; ok {
			dot += ra * rb
		}
		normA += ra * ra
	}
	for _, rb := range b {
		normB += rb * rb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
