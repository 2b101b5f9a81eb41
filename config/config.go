// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	KeyMongoDSN      = "MONGO_DSN"
	KeyMongoDatabase = "MONGO_DATABASE"
	KeyRedisDSN      = "REDIS_DSN"
	KeyExpireAfter   = "EXPIRE_AFTER_SEC"
	KeyS3Endpoint    = "S3_ENDPOINT"
	KeyS3Region      = "S3_REGION"
	KeyS3AccessKey   = "S3_ACCESS_KEY"
	KeyS3SecretKey   = "S3_SECRET_KEY"
	KeyS3UseSSL      = "S3_USE_SSL"
	KeyLogLevel      = "LOG_LEVEL"
	KeyLogFile       = "LOGFILE_PATH"
)

var ErrMissing = errors.New("config: missing required setting")

type Config struct {
	MongoDSN      string `mapstructure:"MONGO_DSN"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	RedisDSN      string `mapstructure:"REDIS_DSN"`

	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOGFILE_PATH"`

	v *viper.Viper
}

// Load reads the environment. A .env file in the working directory is
// loaded first if present; real environment variables take precedence.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(dotenv string) (*Config, error) {
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", dotenv, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyExpireAfter, 0)
	v.SetDefault(KeyLogLevel, "info")
	for _, k := range []string{
		KeyMongoDSN, KeyMongoDatabase, KeyRedisDSN, KeyExpireAfter,
		KeyS3Endpoint, KeyS3Region, KeyS3AccessKey, KeyS3SecretKey, KeyS3UseSSL,
		KeyLogLevel, KeyLogFile,
	} {
		_ = v.BindEnv(k)
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.MongoDSN == "" {
		missing = append(missing, KeyMongoDSN)
	}
	if c.MongoDatabase == "" {
		missing = append(missing, KeyMongoDatabase)
	}
	if c.RedisDSN == "" {
		missing = append(missing, KeyRedisDSN)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	secs, err := cast.ToIntE(c.v.Get(KeyExpireAfter))
	if err != nil {
		return fmt.Errorf("config: %s must be a whole number of seconds: %w", KeyExpireAfter, err)
	}
	if secs < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyExpireAfter)
	}
	return nil
}

// ExpireAfter is the current default expiration. It is re-read from the
// environment on every call, so changes made after Load are picked up.
func (c *Config) ExpireAfter() time.Duration {
	return time.Duration(c.v.GetInt(KeyExpireAfter)) * time.Second
}

// DefaultExpiry implements doccache.ExpirySource.
func (c *Config) DefaultExpiry() time.Duration { return c.ExpireAfter() }

// S3Enabled reports whether an object store endpoint is configured.
func (c *Config) S3Enabled() bool { return c.S3Endpoint != "" }

// String masks credentials.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MongoDSN: %s\n", mask(c.MongoDSN))
	fmt.Fprintf(&sb, "MongoDatabase: %s\n", c.MongoDatabase)
	fmt.Fprintf(&sb, "RedisDSN: %s\n", mask(c.RedisDSN))
	fmt.Fprintf(&sb, "ExpireAfter: %s\n", c.ExpireAfter())
	fmt.Fprintf(&sb, "S3Endpoint: %s\n", c.S3Endpoint)
	fmt.Fprintf(&sb, "S3Region: %s\n", c.S3Region)
	fmt.Fprintf(&sb, "S3AccessKey: %s\n", mask(c.S3AccessKey))
	fmt.Fprintf(&sb, "S3SecretKey: %s\n", mask(c.S3SecretKey))
	fmt.Fprintf(&sb, "S3UseSSL: %v\n", c.S3UseSSL)
	fmt.Fprintf(&sb, "LogLevel: %s\n", c.LogLevel)
	return sb.String()
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "********"
}
