package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env       string
	Port      string
	AppSecret string

	// 数据与模型产物
	DataDir       string // 清洗后的平台 CSV 与评分表目录
	ModelDir      string // 相似度矩阵产物目录
	CatalogSource string // csv | postgres
	DatabaseURL   string

	// 推荐 / 预测参数
	PredictSliceLimit int           // 预测模型只取每个平台交互数据的前 N 行
	PredictNeighbors  int           // KNN 近邻数
	RecommendTopK     int           // 相似推荐返回条数
	RecommendCompat   bool          // true 时保留旧版哨兵返回（查无标题时 200 + 纯文本）
	ModelCacheTTL     time.Duration // 预测模型缓存有效期

	// 管理接口
	AdminPasswordHash string // bcrypt 哈希，留空则禁用管理登录
	JWTExpiry         time.Duration
}

// Load 加载配置
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))
	sliceLimit, _ := strconv.Atoi(getEnv("PREDICT_SLICE_LIMIT", "5000"))
	neighbors, _ := strconv.Atoi(getEnv("PREDICT_NEIGHBORS", "50"))
	topK, _ := strconv.Atoi(getEnv("RECOMMEND_TOP_K", "5"))
	modelTTLMin, _ := strconv.Atoi(getEnv("MODEL_CACHE_TTL_MINUTES", "60"))

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "streamlens")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")
	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8000"),
		AppSecret:         appSecret,
		DataDir:           getEnv("DATA_DIR", "./datasets"),
		ModelDir:          getEnv("MODEL_DIR", "./model"),
		CatalogSource:     getEnv("CATALOG_SOURCE", "csv"),
		DatabaseURL:       dbURL,
		PredictSliceLimit: sliceLimit,
		PredictNeighbors:  neighbors,
		RecommendTopK:     topK,
		RecommendCompat:   getEnv("RECOMMEND_COMPAT", "false") == "true",
		ModelCacheTTL:     time.Duration(modelTTLMin) * time.Minute,
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTExpiry:         time.Duration(expiryHours) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
