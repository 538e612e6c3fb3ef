package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "csv", cfg.CatalogSource)
	assert.Equal(t, 5000, cfg.PredictSliceLimit)
	assert.Equal(t, 50, cfg.PredictNeighbors)
	assert.Equal(t, 5, cfg.RecommendTopK)
	assert.False(t, cfg.RecommendCompat)
	assert.Equal(t, time.Hour, cfg.ModelCacheTTL)
	assert.Equal(t, 72*time.Hour, cfg.JWTExpiry)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("PREDICT_SLICE_LIMIT", "1000")
	t.Setenv("RECOMMEND_COMPAT", "true")
	t.Setenv("DB_NAME", "catalog_test")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.CatalogSource)
	assert.Equal(t, 1000, cfg.PredictSliceLimit)
	assert.True(t, cfg.RecommendCompat)
	assert.Contains(t, cfg.DatabaseURL, "/catalog_test?")
}
