package config

import (
	"os"
	"strconv"

	"casino_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Движок: суммы в минорных единицах (центы)
	RTP          float64
	MinBet       int64
	MaxBet       int64
	MaxProfit    int64
	StartBalance int64

	APIRateLimit   int
	APIRateWindow  int
	GameRateLimit  int
	GameRateWindow int
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		JWTSecret:      jwtSecret,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		RTP:            envFloat("RTP", 0.99),
		MinBet:         envInt64("MIN_BET", 20),      // 0.20
		MaxBet:         envInt64("MAX_BET", 100000),  // 1000.00
		MaxProfit:      envInt64("MAX_PROFIT", 1000000),
		StartBalance:   envInt64("START_BALANCE", 100000),
		APIRateLimit:   envInt("API_RATE_LIMIT", 120),
		APIRateWindow:  envInt("API_RATE_WINDOW", 60),
		GameRateLimit:  envInt("GAME_RATE_LIMIT", 60),
		GameRateWindow: envInt("GAME_RATE_WINDOW", 60),
	}

	if cfg.RTP <= 0 || cfg.RTP > 1 {
		logger.Fatal("RTP must be in (0, 1]", "rtp", cfg.RTP)
	}
	if cfg.MinBet <= 0 || cfg.MaxBet < cfg.MinBet {
		logger.Fatal("invalid bet limits", "min_bet", cfg.MinBet, "max_bet", cfg.MaxBet)
	}

	return cfg
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
