package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamlens/internal/model"
	"github.com/user/streamlens/internal/store"
)

func score(v float64) *float64 { return &v }

func testCatalog() *store.Catalog {
	netflix := &store.Platform{
		Key: "netflix",
		Contents: []model.ContentRecord{
			{ID: "n1", Title: "the long one", Kind: "movie", ReleaseYear: 1999,
				Country: "united states", Cast: []string{"actor one", "actor two"},
				Classification: "pg", Score: score(4.0), DurationValue: 120, DurationUnit: "min"},
			{ID: "n2", Title: "short film", Kind: "movie", ReleaseYear: 1999,
				Country: "canada", Cast: []string{"actor one"},
				Classification: "g", Score: score(2.5), DurationValue: 90, DurationUnit: "min"},
			{ID: "n3", Title: "mid film", Kind: "movie", ReleaseYear: 2005,
				Country: "canada", Cast: []string{"zeta", "alpha"},
				Classification: "pg", Score: score(4.5), DurationValue: 100, DurationUnit: "min"},
			{ID: "n4", Title: "some show", Kind: "tv show", ReleaseYear: 1998,
				Country: "canada", Classification: "tv-ma", DurationValue: 2, DurationUnit: "seasons"},
		},
		Interactions: []model.Interaction{
			{UserID: 1, Title: "the long one", Rating: 4.5},
			{UserID: 2, Title: "the long one", Rating: 3.5},
			{UserID: 1, Title: "short film", Rating: 5.0},
			{UserID: 3, Title: "mid film", Rating: 2.0},
		},
	}
	hulu := &store.Platform{
		Key: "hulu",
		Contents: []model.ContentRecord{
			{ID: "h1", Title: "hulu feature", Kind: "movie", ReleaseYear: 2018,
				Country: "japan", Cast: []string{"actor five"},
				Classification: "pg-13", Score: score(4.0), DurationValue: 105, DurationUnit: "min"},
		},
		Interactions: []model.Interaction{
			{UserID: 2, Title: "hulu feature", Rating: 4.0},
		},
	}
	return store.NewCatalog(map[string]*store.Platform{"netflix": netflix, "hulu": hulu})
}

func testIndex(t *testing.T) *store.SimilarityIndex {
	t.Helper()
	idx, err := store.NewSimilarityIndex(
		[]string{"the long one", "short film", "mid film", "hulu feature"},
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

func testHandle(t *testing.T) *store.Handle {
	t.Helper()
	return store.NewHandle(testCatalog(), testIndex(t))
}

func TestMaxDurationTitle(t *testing.T) {
	s := NewQueryService(testHandle(t))

	title, err := s.MaxDurationTitle("netflix", 1999, "min")
	require.NoError(t, err)
	assert.Equal(t, "the long one", title)
}

func TestMaxDurationTitleErrors(t *testing.T) {
	s := NewQueryService(testHandle(t))

	_, err := s.MaxDurationTitle("hbo", 1999, "min")
	assert.ErrorIs(t, err, ErrPlatformNotFound)
	assert.EqualError(t, err, "Platform not found")

	_, err = s.MaxDurationTitle("netflix", 1980, "min")
	assert.ErrorIs(t, err, ErrNoMoviesForYear)

	_, err = s.MaxDurationTitle("netflix", 1999, "hours")
	assert.ErrorIs(t, err, ErrNoDurationMatch)
	assert.EqualError(t, err, "No movies available (Only recieve 'min' as argument)")
}

func TestScoreCount(t *testing.T) {
	s := NewQueryService(testHandle(t))

	count, err := s.ScoreCount("netflix", 3.5, 1999)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// 阈值单调性：阈值越高计数不增
	low, err := s.ScoreCount("netflix", 2.0, 1999)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, low, count)
}

func TestScoreCountErrors(t *testing.T) {
	s := NewQueryService(testHandle(t))

	_, err := s.ScoreCount("hbo", 3.0, 1999)
	assert.ErrorIs(t, err, ErrPlatformNotFound)

	// 年份或评分过滤各自为空即提前报错
	_, err = s.ScoreCount("netflix", 3.0, 1980)
	assert.ErrorIs(t, err, ErrNoScoreMatch)
	_, err = s.ScoreCount("netflix", 5.0, 1999)
	assert.ErrorIs(t, err, ErrNoScoreMatch)

	// 各自非空但组合为空
	_, err = s.ScoreCount("netflix", 4.3, 1999)
	assert.ErrorIs(t, err, ErrNoScoreYearMatch)
}

func TestCountPlatform(t *testing.T) {
	s := NewQueryService(testHandle(t))

	count, err := s.CountPlatform("netflix")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = s.CountPlatform("hulu")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = s.CountPlatform("hbo")
	assert.ErrorIs(t, err, ErrPlatformNotFound)
}

func TestMostFrequentActor(t *testing.T) {
	s := NewQueryService(testHandle(t))

	actor, err := s.MostFrequentActor("netflix", 1999)
	require.NoError(t, err)
	assert.Equal(t, "actor one", actor)
}

func TestMostFrequentActorTieBreak(t *testing.T) {
	s := NewQueryService(testHandle(t))

	// 次数相同按字典序取小者
	actor, err := s.MostFrequentActor("netflix", 2005)
	require.NoError(t, err)
	assert.Equal(t, "alpha", actor)
}

func TestMostFrequentActorErrors(t *testing.T) {
	s := NewQueryService(testHandle(t))

	_, err := s.MostFrequentActor("hbo", 1999)
	assert.ErrorIs(t, err, ErrPlatformNotFound)

	_, err = s.MostFrequentActor("netflix", 1900)
	assert.ErrorIs(t, err, ErrNoDataForYear)

	// 年份有数据但所有行都没有演员
	_, err = s.MostFrequentActor("netflix", 1998)
	assert.ErrorIs(t, err, ErrNoActorData)
}

func TestProdPerCountry(t *testing.T) {
	s := NewQueryService(testHandle(t))

	result, err := s.ProdPerCountry("netflix", "movie", "canada", 1999)
	require.NoError(t, err)
	assert.Equal(t, &model.CountryYearCount{Pais: "canada", Anio: 1999, Cantidad: 1}, result)

	_, err = s.ProdPerCountry("netflix", "movie", "france", 1999)
	assert.ErrorIs(t, err, ErrNoCountryMatch)

	_, err = s.ProdPerCountry("hbo", "movie", "canada", 1999)
	assert.ErrorIs(t, err, ErrPlatformNotFound)
}

func TestContentsByClassification(t *testing.T) {
	s := NewQueryService(testHandle(t))

	count, err := s.ContentsByClassification("netflix", "pg")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// 剧集也计入分级统计
	count, err = s.ContentsByClassification("netflix", "tv-ma")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestContentsByClassificationInvalidLabel(t *testing.T) {
	s := NewQueryService(testHandle(t))

	_, err := s.ContentsByClassification("netflix", "zzz")
	var invalid *InvalidClassificationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "El rating zzz no es válido para la plataforma netflix.", invalid.Error())

	// 有效性按平台划定：pg-13 只在 hulu 出现
	_, err = s.ContentsByClassification("netflix", "pg-13")
	assert.ErrorAs(t, err, &invalid)

	count, err := s.ContentsByClassification("hulu", "pg-13")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
