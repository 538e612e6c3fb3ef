package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/user/streamlens/internal/model"
)

// SimilarityIndex 预计算的标题相似度索引：
// 有序标题列表 + N×N 相似度矩阵，离线模型步骤产出，服务期内只读
type SimilarityIndex struct {
	titles []string
	rowOf  map[string]int // 小写标题 -> 行号
	matrix [][]float64
}

// NewSimilarityIndex 构建索引并校验不变量：
// 矩阵行数与每行宽度都必须等于标题数，小写后的标题必须唯一
func NewSimilarityIndex(titles []string, matrix [][]float64) (*SimilarityIndex, error) {
	if len(matrix) != len(titles) {
		return nil, fmt.Errorf("相似度矩阵行数 %d 与标题数 %d 不一致", len(matrix), len(titles))
	}
	rowOf := make(map[string]int, len(titles))
	for i, title := range titles {
		key := strings.ToLower(title)
		if _, dup := rowOf[key]; dup {
			return nil, fmt.Errorf("标题在小写后重复: %q", title)
		}
		rowOf[key] = i
		if len(matrix[i]) != len(titles) {
			return nil, fmt.Errorf("矩阵第 %d 行宽度 %d 与标题数 %d 不一致", i, len(matrix[i]), len(titles))
		}
	}
	return &SimilarityIndex{
		titles: titles,
		rowOf:  rowOf,
		matrix: matrix,
	}, nil
}

// LoadSimilarity 从模型目录读取产物：titles.json（标题列表）+ matrix.csv（相似度矩阵）
func LoadSimilarity(modelDir string) (*SimilarityIndex, error) {
	start := time.Now()

	raw, err := os.ReadFile(filepath.Join(modelDir, "titles.json"))
	if err != nil {
		return nil, fmt.Errorf("读取标题列表失败: %w", err)
	}
	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		return nil, fmt.Errorf("解析标题列表失败: %w", err)
	}

	f, err := os.Open(filepath.Join(modelDir, "matrix.csv"))
	if err != nil {
		return nil, fmt.Errorf("读取相似度矩阵失败: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析相似度矩阵失败: %w", err)
	}

	matrix := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("矩阵 (%d,%d) 不是数值: %w", i, j, err)
			}
			row[j] = v
		}
		matrix[i] = row
	}

	idx, err := NewSimilarityIndex(titles, matrix)
	if err != nil {
		return nil, err
	}
	log.Printf("[Store] 相似度索引加载完成: %d 个标题, 耗时 %v", len(titles), time.Since(start))
	return idx, nil
}

// Len 索引中的标题数
func (s *SimilarityIndex) Len() int {
	return len(s.titles)
}

// Lookup 大小写不敏感的精确标题查找，返回行号
func (s *SimilarityIndex) Lookup(title string) (int, bool) {
	row, ok := s.rowOf[strings.ToLower(title)]
	return row, ok
}

// TopK 取指定行的前 K 个相似标题：
// 全行按分数稳定降序排序后丢弃第一项（查询标题自身，依赖对角线为最大值），
// 再取接下来的 K 项。分数相同保持列序，结果确定。
func (s *SimilarityIndex) TopK(row, k int) []model.SimilarTitle {
	type pair struct {
		col   int
		score float64
	}
	pairs := make([]pair, len(s.matrix[row]))
	for col, score := range s.matrix[row] {
		pairs[col] = pair{col: col, score: score}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	// 丢弃自身后最多还剩 N-1 项
	if len(pairs) <= 1 {
		return nil
	}
	pairs = pairs[1:]
	if len(pairs) > k {
		pairs = pairs[:k]
	}

	result := make([]model.SimilarTitle, len(pairs))
	for i, p := range pairs {
		result[i] = model.SimilarTitle{
			Title: s.titles[p.col],
			Score: p.score,
		}
	}
	return result
}
