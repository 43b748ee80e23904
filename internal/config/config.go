package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != "" && c.DBName != "" && c.DBUser != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type RabbitMQConfig struct {
	URL      string
	JobQueue string
	Prefetch int
}

type MatchingConfig struct {
	MinPercentage     int
	Workers           int
	ParallelThreshold int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory, if present, is loaded first and never overrides real variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
	}

	cfg.Log = LogConfig{
		JSON:  envBool("LOG_JSON", false),
		Debug: envBool("LOG_DEBUG", false),
	}

	cfg.Database = databaseFromEnv()

	cfg.Redis = redisFromEnv()

	cfg.RabbitMQ = RabbitMQConfig{
		URL:      opt("RABBITMQ_URL"),
		JobQueue: envOr("RABBITMQ_JOB_QUEUE", "job_match.jobs"),
		Prefetch: envInt("RABBITMQ_PREFETCH", 4),
	}

	cfg.Matching = MatchingConfig{
		MinPercentage:     envInt("MATCH_MIN_PERCENTAGE", 50),
		Workers:           envInt("MATCH_WORKERS", 4),
		ParallelThreshold: envInt("MATCH_PARALLEL_THRESHOLD", 256),
	}
	if cfg.Matching.MinPercentage < 0 || cfg.Matching.MinPercentage > 100 {
		return Config{}, fmt.Errorf("MATCH_MIN_PERCENTAGE must be within 0-100, got %d", cfg.Matching.MinPercentage)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadDatabase reads only the DB_* variables, for tools that need the store
// but not the HTTP service settings.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()

	cfg := databaseFromEnv()
	if !cfg.Enabled() {
		return DatabaseConfig{}, fmt.Errorf("%w: DB_HOST, DB_NAME, DB_USER", errMissingRequiredEnv)
	}
	return cfg, nil
}

// LoadRedis reads only the REDIS_* variables.
func LoadRedis() RedisConfig {
	_ = godotenv.Load()
	return redisFromEnv()
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		Host:     envOr("REDIS_HOST", "localhost"),
		Port:     envOr("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		TTL:      envSeconds("REDIS_TTL", 600*time.Second),
	}
}

func databaseFromEnv() DatabaseConfig {
	cfg := DatabaseConfig{
		DBHost:     strings.TrimSpace(os.Getenv("DB_HOST")),
		DBPort:     envOr("DB_PORT", "5432"),
		DBName:     strings.TrimSpace(os.Getenv("DB_NAME")),
		DBUser:     strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBSSLMode:  envOr("DB_SSL_MODE", "disable"),

		ConnectTimeout:        envSeconds("DB_CONNECT_TIMEOUT", 0),
		PoolMaxConns:          int32(envInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(envInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   envSeconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   envSeconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: envSeconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}
	return cfg
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func envSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
