package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/cablehouse-backend/internal/data/db"
	"github.com/yungbote/cablehouse-backend/internal/platform/envutil"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime/bus"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type DBConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// BackupConfig selects where database snapshots go. Mode is "s3", "memory"
// or empty for disabled.
type BackupConfig struct {
	Mode      string        `yaml:"mode"`
	Bucket    string        `yaml:"bucket"`
	Region    string        `yaml:"region"`
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	PathStyle bool          `yaml:"path_style"`
	Interval  time.Duration `yaml:"interval"`
}

type Config struct {
	HTTPAddr       string        `yaml:"http_addr"`
	LogMode        string        `yaml:"log_mode"`
	DB             DBConfig      `yaml:"db"`
	JWTSecretKey   string        `yaml:"jwt_secret_key"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
	AdminUsername  string        `yaml:"admin_username"`
	AdminPassword  string        `yaml:"admin_password"`
	Redis          RedisConfig   `yaml:"redis"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	MetricsEnabled bool          `yaml:"metrics_enabled"`
	Otel           OtelConfig    `yaml:"otel"`
	Backup         BackupConfig  `yaml:"backup"`
}

func defaultConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		LogMode:        "development",
		DB:             DBConfig{Driver: db.DriverSQLite, Host: "localhost", Port: "5432", User: "postgres", Name: "cablehouse"},
		JWTSecretKey:   "defaultsecret",
		AccessTokenTTL: services.DefaultAccessTTL,
		Redis:          RedisConfig{Channel: bus.DefaultChannel},
		MetricsEnabled: true,
		Otel:           OtelConfig{ServiceName: "cablehouse-backend", Environment: "development", SampleRatio: 1},
		Backup:         BackupConfig{Region: "us-east-1"},
	}
}

// LoadConfig layers defaults, the YAML file named by CONFIG_FILE, then
// environment variables.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if log != nil && cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.DSN = envutil.String("DB_DSN", cfg.DB.DSN)
	cfg.DB.Host = envutil.String("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envutil.String("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envutil.String("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envutil.String("POSTGRES_NAME", cfg.DB.Name)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AccessTokenTTL = envutil.Seconds("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL)
	cfg.AdminUsername = envutil.String("ADMIN_USERNAME", cfg.AdminUsername)
	cfg.AdminPassword = envutil.String("ADMIN_PASSWORD", cfg.AdminPassword)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel)

	cfg.CORSOrigins = envutil.List("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)

	cfg.Backup.Mode = envutil.String("BACKUP_MODE", cfg.Backup.Mode)
	cfg.Backup.Bucket = envutil.String("BACKUP_S3_BUCKET", cfg.Backup.Bucket)
	cfg.Backup.Region = envutil.String("BACKUP_S3_REGION", cfg.Backup.Region)
	cfg.Backup.Endpoint = envutil.String("BACKUP_S3_ENDPOINT", cfg.Backup.Endpoint)
	cfg.Backup.AccessKey = envutil.String("BACKUP_S3_ACCESS_KEY", cfg.Backup.AccessKey)
	cfg.Backup.SecretKey = envutil.String("BACKUP_S3_SECRET_KEY", cfg.Backup.SecretKey)
	cfg.Backup.PathStyle = envutil.Bool("BACKUP_S3_PATH_STYLE", cfg.Backup.PathStyle)
	cfg.Backup.Interval = envutil.Seconds("BACKUP_INTERVAL", cfg.Backup.Interval)
	if cfg.Backup.Mode == "" && cfg.Backup.Bucket != "" {
		cfg.Backup.Mode = string(backupModeS3)
	}
}

func (c Config) validate() error {
	switch strings.ToLower(c.DB.Driver) {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("access token ttl must be positive")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func (c Config) dbConfig() db.Config {
	return db.Config{
		Driver:   c.DB.Driver,
		DSN:      c.DB.DSN,
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		Name:     c.DB.Name,
	}
}
