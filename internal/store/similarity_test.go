package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(t *testing.T) *SimilarityIndex {
	t.Helper()
	idx, err := NewSimilarityIndex(
		[]string{"alpha", "beta", "gamma", "delta"},
		[][]float64{
			{1.0, 0.9, 0.2, 0.8},
			{0.9, 1.0, 0.4, 0.3},
			{0.2, 0.4, 1.0, 0.6},
			{0.8, 0.3, 0.6, 1.0},
		},
	)
	require.NoError(t, err)
	return idx
}

func TestNewSimilarityIndexInvariants(t *testing.T) {
	// 行数与标题数不一致
	_, err := NewSimilarityIndex([]string{"a", "b"}, [][]float64{{1}})
	assert.Error(t, err)

	// 行宽与标题数不一致
	_, err = NewSimilarityIndex([]string{"a", "b"}, [][]float64{{1, 0}, {0}})
	assert.Error(t, err)

	// 小写后重复的标题
	_, err = NewSimilarityIndex([]string{"A", "a"}, [][]float64{{1, 0}, {0, 1}})
	assert.Error(t, err)
}

func TestLookupCaseInsensitive(t *testing.T) {
	idx := testIndex(t)

	row, ok := idx.Lookup("ALPHA")
	assert.True(t, ok)
	assert.Equal(t, 0, row)

	_, ok = idx.Lookup("zeta")
	assert.False(t, ok)
}

func TestTopK(t *testing.T) {
	idx := testIndex(t)

	row, _ := idx.Lookup("alpha")
	got := idx.TopK(row, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "beta", got[0].Title)
	assert.Equal(t, "delta", got[1].Title)
	assert.Equal(t, "gamma", got[2].Title)

	// 结果不包含查询标题自身
	for _, st := range got {
		assert.NotEqual(t, "alpha", st.Title)
	}

	// 分数降序
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestTopKBoundedByIndexSize(t *testing.T) {
	idx := testIndex(t)

	row, _ := idx.Lookup("beta")
	got := idx.TopK(row, 10)
	// 最多返回 N-1 项
	assert.Len(t, got, 3)
}

func TestTopKDeterministic(t *testing.T) {
	idx := testIndex(t)

	row, _ := idx.Lookup("gamma")
	first := idx.TopK(row, 3)
	second := idx.TopK(row, 3)
	assert.Equal(t, first, second)
}

func TestLoadSimilarity(t *testing.T) {
	idx, err := LoadSimilarity("testdata/model")
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())

	row, ok := idx.Lookup("The Long One")
	assert.True(t, ok)
	assert.Equal(t, 0, row)
}
