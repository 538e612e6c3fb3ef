package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	catalog, err := Load("testdata")
	require.NoError(t, err)

	assert.Len(t, catalog.Platforms(), 4)
	assert.Equal(t, []string{"amazon_prime", "disney_plus", "hulu", "netflix"}, catalog.Platforms())

	netflix, ok := catalog.Platform("netflix")
	require.True(t, ok)

	// s4 没有任何评分，内连接后不进入目录
	require.Len(t, netflix.Contents, 3)
	assert.Len(t, netflix.Interactions, 4)

	long := netflix.Contents[0]
	assert.Equal(t, "ns1", long.ID)
	assert.Equal(t, "the long one", long.Title)
	assert.Equal(t, "movie", long.Kind)
	assert.Equal(t, 1999, long.ReleaseYear)
	assert.Equal(t, "united states", long.Country)
	assert.Equal(t, []string{"actor one", "actor two"}, long.Cast)
	assert.Equal(t, "2021-09-25", long.DateAdded)
	assert.Equal(t, "pg", long.Classification)
	assert.Equal(t, 120, long.DurationValue)
	assert.Equal(t, "min", long.DurationUnit)
	require.NotNil(t, long.Score)
	assert.InDelta(t, 4.0, *long.Score, 1e-9) // (4.5 + 3.5) / 2

	// 分级缺失统一补 g
	short := netflix.Contents[1]
	assert.Equal(t, "g", short.Classification)

	// 剧集的时长单位
	show := netflix.Contents[2]
	assert.Equal(t, "tv show", show.Kind)
	assert.Equal(t, 2, show.DurationValue)
	assert.Equal(t, "seasons", show.DurationUnit)
	assert.Equal(t, "2021-01-15", show.DateAdded)
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load("testdata/does-not-exist")
	assert.Error(t, err)
}

func TestSplitDuration(t *testing.T) {
	v, u := splitDuration("120 min")
	assert.Equal(t, 120, v)
	assert.Equal(t, "min", u)

	v, u = splitDuration("2 seasons")
	assert.Equal(t, 2, v)
	assert.Equal(t, "seasons", u)

	v, u = splitDuration("")
	assert.Equal(t, 0, v)
	assert.Equal(t, "", u)

	v, u = splitDuration("90.0 min")
	assert.Equal(t, 90, v)
	assert.Equal(t, "min", u)
}

func TestSplitCast(t *testing.T) {
	assert.Nil(t, splitCast(""))
	assert.Equal(t, []string{"a", "b"}, splitCast("a, b"))
	assert.Equal(t, []string{"solo"}, splitCast("solo"))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2021-09-25", normalizeDate("september 25, 2021"))
	assert.Equal(t, "2021-01-15", normalizeDate("2021-01-15"))
	assert.Equal(t, "", normalizeDate(""))
	// 解析失败保留原值
	assert.Equal(t, "not a date", normalizeDate("not a date"))
}

func TestCatalogVersionChangesPerLoad(t *testing.T) {
	a, err := Load("testdata")
	require.NoError(t, err)
	b, err := Load("testdata")
	require.NoError(t, err)
	assert.NotEqual(t, a.Version(), b.Version())
}
