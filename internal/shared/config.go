package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv          string        `mapstructure:"app_env"`
	Port            string        `mapstructure:"port"`
	ResponseMode    string        `mapstructure:"response_mode"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFile         string        `mapstructure:"log_file"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`

	DB      DBConfig     `mapstructure:"db"`
	Uploads UploadConfig `mapstructure:"uploads"`
	Cache   CacheConfig  `mapstructure:"cache"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Prune   PruneConfig  `mapstructure:"prune"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"` // mysql|sqlite3
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	Path         string `mapstructure:"path"` // sqlite3 only
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type UploadConfig struct {
	Dir      string `mapstructure:"dir"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"` // none|memory|redis
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PruneConfig struct {
	Workers int           `mapstructure:"workers"`
	Rate    float64       `mapstructure:"rate"` // removals per second
	Grace   time.Duration `mapstructure:"grace"`
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string { return ":" + strings.TrimPrefix(c.Port, ":") }

var defaults = map[string]any{
	"app_env":          "prod",
	"port":             "3001",
	"response_mode":    "envelope",
	"cors_origin":      "http://localhost:3000",
	"request_timeout":  60 * time.Second,
	"shutdown_timeout": 15 * time.Second,
	"log_level":        "info",
	"log_file":         "",
	"metrics_addr":     "",

	"db.driver":         "mysql",
	"db.host":           "localhost",
	"db.port":           3306,
	"db.user":           "root",
	"db.password":       "",
	"db.name":           "listings",
	"db.path":           "listings.db",
	"db.max_open_conns": 10,

	"uploads.dir":       "uploads",
	"uploads.max_bytes": int64(5 << 20),

	"cache.backend": "none",
	"cache.ttl":     15 * time.Minute,

	"redis.addr":     "localhost:6379",
	"redis.password": "",
	"redis.db":       0,

	"prune.workers": 4,
	"prune.rate":    50.0,
	"prune.grace":   time.Hour,
}

// Load reads defaults, then the optional file named by CONFIG_FILE, then the
// environment (db.host <- DB_HOST and so on).
func Load() (Config, error) {
	v := viper.New()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return Config{}, err
	}
	if f := v.GetString("config_file"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", f, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.DB.Driver == "mysql" && c.DB.Password == "" {
		log.Warn().Msg("DB_PASSWORD is empty")
	}
	return c, nil
}
