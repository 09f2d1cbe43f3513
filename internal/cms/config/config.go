package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/joho/godotenv"
)

// Index and video store drivers.
const (
	DriverLog    = "log"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Config holds the CMS service configuration
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	App       AppConfig       `json:"app" yaml:"app"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	Index     IndexConfig     `json:"index" yaml:"index"`
	Video     VideoConfig     `json:"video" yaml:"video"`
	Mongo     MongoConfig     `json:"mongo" yaml:"mongo"`
	Redis     RedisConfig     `json:"redis" yaml:"redis"`
	SQLite    SQLiteConfig    `json:"sqlite" yaml:"sqlite"`
	Breaker   BreakerConfig   `json:"breaker" yaml:"breaker"`
	Reconcile ReconcileConfig `json:"reconcile" yaml:"reconcile"`
	Logger    logger.Config   `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
	MaxUploadSize  int64    `json:"max_upload_size" yaml:"max_upload_size"`
	MetricsEnabled bool     `json:"metrics_enabled" yaml:"metrics_enabled"`
}

type AppConfig struct {
	NodeID int64 `json:"node_id" yaml:"node_id"`
}

type StorageConfig struct {
	Root          string `json:"root" yaml:"root"`
	PublicPath    string `json:"public_path" yaml:"public_path"`
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
	FSync         bool   `json:"fsync" yaml:"fsync"`
}

type IndexConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	// LogDir is used by the embedded log driver.
	LogDir              string `json:"log_dir" yaml:"log_dir"`
	CompactionThreshold int    `json:"compaction_threshold" yaml:"compaction_threshold"`
}

type VideoConfig struct {
	Driver   string `json:"driver" yaml:"driver"`
	FilePath string `json:"file_path" yaml:"file_path"`
}

type MongoConfig struct {
	URI       string `json:"uri" yaml:"uri"`
	Database  string `json:"database" yaml:"database"`
	TimeoutMS int    `json:"timeout_ms" yaml:"timeout_ms"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

type SQLiteConfig struct {
	Path string `json:"path" yaml:"path"`
}

type BreakerConfig struct {
	FailureThreshold int `json:"failure_threshold" yaml:"failure_threshold"`
	OpenTimeoutMS    int `json:"open_timeout_ms" yaml:"open_timeout_ms"`
}

type ReconcileConfig struct {
	OnStart       bool `json:"on_start" yaml:"on_start"`
	Workers       int  `json:"workers" yaml:"workers"`
	GracePeriodMS int  `json:"grace_period_ms" yaml:"grace_period_ms"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":5000",
			AllowedOrigins: []string{"*"},
			MaxUploadSize:  10 * 1024 * 1024, // 10MB
			MetricsEnabled: true,
		},
		App: AppConfig{
			NodeID: 1,
		},
		Storage: StorageConfig{
			Root:          "./uploads",
			PublicPath:    "/uploads",
			PublicBaseURL: "http://localhost:5000/uploads",
		},
		Index: IndexConfig{
			Driver:              DriverLog,
			LogDir:              "./data/index",
			CompactionThreshold: 256,
		},
		Video: VideoConfig{
			Driver:   DriverFile,
			FilePath: "./data/videoLinks.json",
		},
		Mongo: MongoConfig{
			URI:       "mongodb://localhost:27017",
			Database:  "cms",
			TimeoutMS: 5000,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "cms",
		},
		SQLite: SQLiteConfig{
			Path: "./data/cms.db",
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			OpenTimeoutMS:    10000,
		},
		Reconcile: ReconcileConfig{
			Workers:       2,
			GracePeriodMS: 60000,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file, then applies .env and environment overrides.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "cms", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// logger is not initialised yet, fall back to the standard logger.
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		parsedCfg = cfg
	}

	applyEnv(parsedCfg)
	return parsedCfg, nil
}

// applyEnv overrides deployment specific settings from the environment.
func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.Storage.PublicBaseURL = v
	}
	if v := os.Getenv("STORAGE_ROOT"); v != "" {
		cfg.Storage.Root = v
	}
	if v := os.Getenv("INDEX_DRIVER"); v != "" {
		cfg.Index.Driver = v
	}
	if v := os.Getenv("VIDEO_DRIVER"); v != "" {
		cfg.Video.Driver = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.SQLite.Path = v
	}
	if v := os.Getenv("NODE_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.App.NodeID = id
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MongoTimeout returns the per-operation Mongo timeout with safe default.
func (c *Config) MongoTimeout() time.Duration {
	if c.Mongo.TimeoutMS > 0 {
		return time.Duration(c.Mongo.TimeoutMS) * time.Millisecond
	}
	return 5 * time.Second
}

// BreakerOpenTimeout returns how long an open circuit rejects calls.
func (c *Config) BreakerOpenTimeout() time.Duration {
	if c.Breaker.OpenTimeoutMS > 0 {
		return time.Duration(c.Breaker.OpenTimeoutMS) * time.Millisecond
	}
	return 10 * time.Second
}

// ReconcileGracePeriod returns the minimum file age considered by the reconciler.
func (c *Config) ReconcileGracePeriod() time.Duration {
	if c.Reconcile.GracePeriodMS >= 0 {
		return time.Duration(c.Reconcile.GracePeriodMS) * time.Millisecond
	}
	return time.Minute
}
