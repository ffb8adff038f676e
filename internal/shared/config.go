package shared

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BackendXLSX  = "xlsx"
	BackendMySQL = "mysql"
	BackendRedis = "redis"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	StoreBackend  string
	XLSXPath      string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	RedisKey      string
	RecentLimit   int
	SubmitRPS     int
	ImportWorkers int
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over .env.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		StoreBackend:  strings.ToLower(env("STORE_BACKEND", BackendXLSX)),
		XLSXPath:      env("XLSX_PATH", "RESERVATIONS.xlsx"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/lasante?charset=utf8mb4&loc=Local"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		RedisKey:      env("REDIS_KEY", "lasante:reservations"),
		RecentLimit:   atoi("RECENT_LIMIT", 5),
		SubmitRPS:     atoi("SUBMIT_RPS", 5),
		ImportWorkers: atoi("IMPORT_WORKERS", 4),
	}
	switch c.StoreBackend {
	case BackendXLSX, BackendMySQL, BackendRedis:
	default:
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, using xlsx")
		c.StoreBackend = BackendXLSX
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
