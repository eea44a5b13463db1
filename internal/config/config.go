package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/ueberboese/ueberboese-api/internal/util/urlvalidator"
)

const (
	AccountStoreBackendFile  = "file"
	AccountStoreBackendRedis = "redis"
	AccountStoreBackendS3    = "s3"

	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"

	EventLogOverflowPolicyDrop = "drop"
	EventLogOverflowPolicySync = "sync"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Upstream     UpstreamConfig     `mapstructure:"upstream"`
	Data         DataConfig         `mapstructure:"data"`
	AccountStore AccountStoreConfig `mapstructure:"account_store"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	S3           S3Config           `mapstructure:"s3"`
	Mgmt         MgmtConfig         `mapstructure:"mgmt"`
	Spotify      SpotifyConfig      `mapstructure:"spotify"`
	Log          LogConfig          `mapstructure:"log"`
	Events       EventsConfig       `mapstructure:"events"`
}

type ServerConfig struct {
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port"`
	Mode                string `mapstructure:"mode"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	// MaxBodyBytes caps inbound request bodies read into memory.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig points at the real vendor cloud that unmatched traffic is relayed to.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	ProxyURL       string `mapstructure:"proxy_url"`
	// AllowInsecureHTTP permits a plain http base_url, e.g. a local recording stub.
	AllowInsecureHTTP bool `mapstructure:"allow_insecure_http"`
}

func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

type AccountStoreConfig struct {
	Backend     string            `mapstructure:"backend"`
	MemoryCache MemoryCacheConfig `mapstructure:"memory_cache"`
	// CoalesceMisses merges concurrent upstream fetches for the same account id.
	CoalesceMisses bool `mapstructure:"coalesce_misses"`
}

type MemoryCacheConfig struct {
	Enabled    bool  `mapstructure:"enabled"`
	MaxCostMB  int64 `mapstructure:"max_cost_mb"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	ForcePathStyle  bool   `mapstructure:"force_path_style"`
}

// MgmtConfig holds the basic-auth credentials for /mgmt. PasswordHash (bcrypt) wins over Password.
type MgmtConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

type SpotifyConfig struct {
	ClientID              string   `mapstructure:"client_id"`
	ClientSecret          string   `mapstructure:"client_secret"`
	RedirectURI           string   `mapstructure:"redirect_uri"`
	Scopes                []string `mapstructure:"scopes"`
	AuthURL               string   `mapstructure:"auth_url"`
	TokenURL              string   `mapstructure:"token_url"`
	APIBaseURL            string   `mapstructure:"api_base_url"`
	EntityCacheTTLSeconds int      `mapstructure:"entity_cache_ttl_seconds"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	EventFile  string `mapstructure:"event_file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type EventsConfig struct {
	Workers            int    `mapstructure:"workers"`
	QueueSize          int    `mapstructure:"queue_size"`
	TaskTimeoutSeconds int    `mapstructure:"task_timeout_seconds"`
	OverflowPolicy     string `mapstructure:"overflow_policy"`
	MaxPerDevice       int    `mapstructure:"max_per_device"`
}

// Load reads configuration from file and environment. An empty path searches the default locations.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/ueberboese")
	}

	v.SetEnvPrefix("UEBERBOESE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 60)
	v.SetDefault("server.max_body_bytes", 4<<20)

	v.SetDefault("upstream.base_url", "https://streaming.bose.com")
	v.SetDefault("upstream.timeout_seconds", 30)
	v.SetDefault("upstream.allow_insecure_http", false)

	v.SetDefault("data.dir", "data")

	v.SetDefault("account_store.backend", AccountStoreBackendFile)
	v.SetDefault("account_store.memory_cache.enabled", false)
	v.SetDefault("account_store.memory_cache.max_cost_mb", 64)
	v.SetDefault("account_store.memory_cache.ttl_seconds", 0)
	v.SetDefault("account_store.coalesce_misses", false)

	v.SetDefault("database.driver", DatabaseDriverSQLite)
	v.SetDefault("database.dsn", "file:data/ueberboese.db?_pragma=busy_timeout(5000)")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 30)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.key_prefix", "ueberboese:")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "")

	v.SetDefault("spotify.redirect_uri", "ueberboese-login://spotify")
	v.SetDefault("spotify.scopes", []string{
		"user-read-private",
		"user-read-email",
		"streaming",
		"user-read-playback-state",
		"user-modify-playback-state",
	})
	v.SetDefault("spotify.auth_url", "https://accounts.spotify.com/authorize")
	v.SetDefault("spotify.token_url", "https://accounts.spotify.com/api/token")
	v.SetDefault("spotify.api_base_url", "https://api.spotify.com/v1")
	v.SetDefault("spotify.entity_cache_ttl_seconds", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.event_file", "logs/events.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("events.workers", 2)
	v.SetDefault("events.queue_size", 1024)
	v.SetDefault("events.task_timeout_seconds", 5)
	v.SetDefault("events.overflow_policy", EventLogOverflowPolicyDrop)
	v.SetDefault("events.max_per_device", 500)
}

func (c *Config) normalize() {
	c.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(c.Upstream.BaseURL), "/")
	c.Spotify.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.Spotify.APIBaseURL), "/")
	c.AccountStore.Backend = strings.ToLower(strings.TrimSpace(c.AccountStore.Backend))
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Events.OverflowPolicy = strings.ToLower(strings.TrimSpace(c.Events.OverflowPolicy))
}

// Validate checks that the configuration can be used to start the server.
func (c *Config) Validate() error {
	baseURL, err := urlvalidator.ValidateURLFormat(c.Upstream.BaseURL, c.Upstream.AllowInsecureHTTP)
	if err != nil {
		return fmt.Errorf("upstream.base_url: %w", err)
	}
	c.Upstream.BaseURL = baseURL
	for key, raw := range map[string]*string{
		"spotify.auth_url":     &c.Spotify.AuthURL,
		"spotify.token_url":    &c.Spotify.TokenURL,
		"spotify.api_base_url": &c.Spotify.APIBaseURL,
	} {
		if *raw == "" {
			continue
		}
		normalized, err := urlvalidator.ValidateURLFormat(*raw, false)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*raw = normalized
	}
	switch c.AccountStore.Backend {
	case AccountStoreBackendFile:
		if strings.TrimSpace(c.Data.Dir) == "" {
			return fmt.Errorf("data.dir is required for the file account store")
		}
	case AccountStoreBackendRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("redis.addr is required for the redis account store")
		}
	case AccountStoreBackendS3:
		if strings.TrimSpace(c.S3.Bucket) == "" {
			return fmt.Errorf("s3.bucket is required for the s3 account store")
		}
	default:
		return fmt.Errorf("unsupported account_store.backend %q", c.AccountStore.Backend)
	}
	switch c.Database.Driver {
	case DatabaseDriverSQLite, DatabaseDriverPostgres:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Mgmt.Username) == "" {
		return fmt.Errorf("mgmt.username is required")
	}
	if c.Mgmt.Password == "" && c.Mgmt.PasswordHash == "" {
		return fmt.Errorf("mgmt.password or mgmt.password_hash is required")
	}
	switch c.Events.OverflowPolicy {
	case EventLogOverflowPolicyDrop, EventLogOverflowPolicySync:
	default:
		return fmt.Errorf("unsupported events.overflow_policy %q", c.Events.OverflowPolicy)
	}
	return nil
}
