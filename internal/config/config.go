package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds application level configuration loaded from an optional file and the environment.
type Config struct {
	AppEnv string `mapstructure:"app_env"`
	Port   string `mapstructure:"port"`

	DBDriver      string `mapstructure:"db_driver"`
	DatabaseURL   string `mapstructure:"database_url"`
	DBAutoMigrate bool   `mapstructure:"db_auto_migrate"`

	RedisAddr string `mapstructure:"redis_addr"`
	RedisPass string `mapstructure:"redis_password"`
	RedisDB   int    `mapstructure:"redis_db"`

	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiresIn time.Duration `mapstructure:"jwt_expires_in"`

	FrontendURL string `mapstructure:"frontend_url"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	MailFrom     string `mapstructure:"mail_from"`

	StorageDriver string `mapstructure:"storage_driver"`
	S3Bucket      string `mapstructure:"s3_bucket"`
	S3Region      string `mapstructure:"s3_region"`
	S3Endpoint    string `mapstructure:"s3_endpoint"`
	S3AccessKey   string `mapstructure:"s3_access_key"`
	S3SecretKey   string `mapstructure:"s3_secret_key"`
	S3PublicURL   string `mapstructure:"s3_public_url"`
	UploadDir     string `mapstructure:"upload_dir"`
	UploadBaseURL string `mapstructure:"upload_base_url"`

	OTPRequestLimit  int           `mapstructure:"otp_request_limit"`
	OTPRequestWindow time.Duration `mapstructure:"otp_request_window"`
	OTPSweepSchedule string        `mapstructure:"otp_sweep_schedule"`
}

var defaults = map[string]interface{}{
	"app_env":            EnvDevelopment,
	"port":               "4000",
	"db_driver":          "postgres",
	"database_url":       "host=localhost user=postgres password=postgres dbname=himti port=5432 sslmode=disable",
	"db_auto_migrate":    false,
	"redis_addr":         "localhost:6379",
	"redis_password":     "",
	"redis_db":           0,
	"jwt_secret":         "",
	"jwt_expires_in":     24 * time.Hour,
	"frontend_url":       "http://localhost:3000",
	"smtp_host":          "localhost",
	"smtp_port":          1025,
	"smtp_user":          "",
	"smtp_password":      "",
	"mail_from":          "no-reply@himti.or.id",
	"storage_driver":     "local",
	"s3_bucket":          "",
	"s3_region":          "auto",
	"s3_endpoint":        "",
	"s3_access_key":      "",
	"s3_secret_key":      "",
	"s3_public_url":      "",
	"upload_dir":         "./uploads",
	"upload_base_url":    "http://localhost:4000/uploads",
	"otp_request_limit":  5,
	"otp_request_window": 15 * time.Minute,
	"otp_sweep_schedule": "@every 1h",
}

// Load builds Config from defaults, an optional config file named by CONFIG_FILE and the environment.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.AppEnv != EnvDevelopment && c.AppEnv != EnvTesting {
			return errors.New("JWT_SECRET must be set")
		}
		c.JWTSecret = "himti-dev-secret"
	}
	switch c.DBDriver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageDriver {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.JWTExpiresIn <= 0 {
		c.JWTExpiresIn = 24 * time.Hour
	}
	return nil
}
