package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Progress  ProgressConfig
	Algorithm AlgorithmConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig tunes the orchestrator's shared construction heuristic
// and default run parameters.
type SchedulerConfig struct {
	DefaultTimeoutSeconds   int
	MaxConcurrentRuns       int
	MemoizationTTL          time.Duration
	MemoizationEnabled      bool
	DefaultDailySessionCap  int
	DefaultSlotsPerDay      int
}

// ProgressConfig tunes the SSE progress hub.
type ProgressConfig struct {
	PingInterval    time.Duration
	WriteTimeout    time.Duration
	FrameBufferSize int
}

// AlgorithmConfig locates the on-disk parameter descriptors consumed by
// the strategy registry and CLI.
type AlgorithmConfig struct {
	ParamSchemaPath string
}

// ParamSchemaDir resolves the directory pkg/paramschema.Load should
// search, from the configured algorithms.toml/.yaml path. Shared by
// cmd/schedctl and the HTTP api-gateway so both front doors read the
// same published descriptor overlay.
func (c *Config) ParamSchemaDir() string {
	if c.Algorithm.ParamSchemaPath == "" {
		return "configs"
	}
	return filepath.Dir(c.Algorithm.ParamSchemaPath)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		DefaultTimeoutSeconds:  v.GetInt("SCHEDULER_DEFAULT_TIMEOUT_SECONDS"),
		MaxConcurrentRuns:      v.GetInt("SCHEDULER_MAX_CONCURRENT_RUNS"),
		MemoizationTTL:         parseDuration(v.GetString("SCHEDULER_MEMOIZATION_TTL"), 15*time.Minute),
		MemoizationEnabled:     v.GetBool("SCHEDULER_MEMOIZATION_ENABLED"),
		DefaultDailySessionCap: v.GetInt("SCHEDULER_DEFAULT_DAILY_SESSION_CAP"),
		DefaultSlotsPerDay:     v.GetInt("SCHEDULER_DEFAULT_SLOTS_PER_DAY"),
	}

	cfg.Progress = ProgressConfig{
		PingInterval:    parseDuration(v.GetString("PROGRESS_PING_INTERVAL"), 20*time.Second),
		WriteTimeout:    parseDuration(v.GetString("PROGRESS_WRITE_TIMEOUT"), 5*time.Second),
		FrameBufferSize: v.GetInt("PROGRESS_FRAME_BUFFER_SIZE"),
	}

	cfg.Algorithm = AlgorithmConfig{
		ParamSchemaPath: v.GetString("ALGORITHM_PARAM_SCHEMA_PATH"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "defense_scheduler")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "1h")
	v.SetDefault("JWT_ISSUER", "defense-scheduler")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_DEFAULT_TIMEOUT_SECONDS", 60)
	v.SetDefault("SCHEDULER_MAX_CONCURRENT_RUNS", 4)
	v.SetDefault("SCHEDULER_MEMOIZATION_TTL", "15m")
	v.SetDefault("SCHEDULER_MEMOIZATION_ENABLED", true)
	v.SetDefault("SCHEDULER_DEFAULT_DAILY_SESSION_CAP", 8)
	v.SetDefault("SCHEDULER_DEFAULT_SLOTS_PER_DAY", 8)

	v.SetDefault("PROGRESS_PING_INTERVAL", "20s")
	v.SetDefault("PROGRESS_WRITE_TIMEOUT", "5s")
	v.SetDefault("PROGRESS_FRAME_BUFFER_SIZE", 16)

	v.SetDefault("ALGORITHM_PARAM_SCHEMA_PATH", "./configs/algorithms.toml")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
