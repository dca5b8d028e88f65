package config

import (
	"time"

	"github.com/whizpalsdeveloper/NotesApp/utils"
)

type ServerConfig struct {
	Host          string
	Port          string
	AllowedOrigin string
	Env           string // local | dev | prod
}

type DatabaseConfig struct {
	URI             string
	DatabaseName    string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

type StorageConfig struct {
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	PublicBaseURL  string
	UploadsDir     string
}

type RateLimitConfig struct {
	Enabled  bool
	RPS      float64
	Burst    int
	UseRedis bool
	Window   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
}

// Load reads the whole runtime configuration from the environment.
// Every value has a workable local-dev default; MONGO_URI is the only
// setting whose absence changes behavior (the server falls back to the
// in-memory store).
func Load() Config {
	return Config{
		Server: ServerConfig{
			Host:          utils.GetEnvAsString("HOST", "0.0.0.0"),
			Port:          utils.GetEnvAsString("PORT", "8080"),
			AllowedOrigin: utils.GetEnvAsString("FRONTEND_ORIGIN", "http://localhost:3000"),
			Env:           utils.GetEnvAsString("APP_ENV", "local"),
		},
		Database: DatabaseConfig{
			URI:             utils.GetEnvAsString("MONGO_URI", ""),
			DatabaseName:    utils.GetEnvAsString("MONGO_DB", "notes"),
			MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
			MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
			MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
			ConnectTimeout:  utils.GetEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			MinIOEndpoint:  utils.GetEnvAsString("MINIO_ENDPOINT", ""),
			MinIOAccessKey: utils.GetEnvAsString("MINIO_ACCESS_KEY", ""),
			MinIOSecretKey: utils.GetEnvAsString("MINIO_SECRET_KEY", ""),
			MinIOBucket:    utils.GetEnvAsString("MINIO_BUCKET", "notes-images"),
			MinIOUseSSL:    utils.GetEnvAsBool("MINIO_USE_SSL", false),
			PublicBaseURL:  utils.GetEnvAsString("PUBLIC_BASE_URL", "http://localhost:8080"),
			UploadsDir:     utils.GetEnvAsString("UPLOADS_DIR", "uploads"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  utils.GetEnvAsBool("RATE_LIMIT_ENABLED", false),
			RPS:      utils.GetEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:    utils.GetEnvAsInt("RATE_LIMIT_BURST", 40),
			UseRedis: utils.GetEnvAsBool("RATE_LIMIT_USE_REDIS", false),
			Window:   utils.GetEnvAsDuration("RATE_LIMIT_WINDOW", time.Second),
		},
		Redis: RedisConfig{
			Addr:     utils.GetEnvAsString("REDIS_ADDR", ""),
			Password: utils.GetEnvAsString("REDIS_PASSWORD", ""),
		},
	}
}
