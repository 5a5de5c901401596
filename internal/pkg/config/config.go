package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// UpstreamConfig holds third-party endpoints and credentials.
type UpstreamConfig struct {
	GeocodeURL        string  `mapstructure:"geocode_url"`
	WeatherURL        string  `mapstructure:"weather_url"`
	YelpURL           string  `mapstructure:"yelp_url"`
	MoviesURL         string  `mapstructure:"movies_url"`
	TrailsURL         string  `mapstructure:"trails_url"`
	GoogleAPIKey      string  `mapstructure:"google_api_key"`
	DarkSkyAPIKey     string  `mapstructure:"dark_sky_api_key"`
	YelpAPIKey        string  `mapstructure:"yelp_api_key"`
	TMDBAPIKey        string  `mapstructure:"tmdb_api_key"`
	TrailsAPIKey      string  `mapstructure:"trails_api_key"`
	TrailsMaxDistance float64 `mapstructure:"trails_max_distance"`
}

// CacheConfig controls response caching for the stateless lookups.
type CacheConfig struct {
	TTLSeconds      int    `mapstructure:"ttl_seconds"`
	WeatherTimezone string `mapstructure:"weather_timezone"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "explorer")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "city_explorer")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "stale-purge")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("upstream.geocode_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("upstream.weather_url", "https://api.darksky.net/forecast")
	v.SetDefault("upstream.yelp_url", "https://api.yelp.com/v3/businesses/search")
	v.SetDefault("upstream.movies_url", "https://api.themoviedb.org/3/search/movie")
	v.SetDefault("upstream.trails_url", "https://www.hikingproject.com/data/get-trails")
	v.SetDefault("upstream.trails_max_distance", 10)
	v.SetDefault("upstream.google_api_key", "")
	v.SetDefault("upstream.dark_sky_api_key", "")
	v.SetDefault("upstream.yelp_api_key", "")
	v.SetDefault("upstream.tmdb_api_key", "")
	v.SetDefault("upstream.trails_api_key", "")
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.weather_timezone", "UTC")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: EXPLORER_UPSTREAM_YELP_API_KEY → upstream.yelp_api_key
	v.SetEnvPrefix("EXPLORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var urlScheme = regexp.MustCompile(`^https?://`)

// Validate checks that required configuration fields are present and sane.
// API keys are not required here; a missing key surfaces as an upstream error.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	for name, u := range map[string]string{
		"upstream.geocode_url": c.Upstream.GeocodeURL,
		"upstream.weather_url": c.Upstream.WeatherURL,
		"upstream.yelp_url":    c.Upstream.YelpURL,
		"upstream.movies_url":  c.Upstream.MoviesURL,
		"upstream.trails_url":  c.Upstream.TrailsURL,
	} {
		if !urlScheme.MatchString(u) {
			errs = append(errs, fmt.Sprintf("%s must be an http(s) URL, got %q", name, u))
		}
	}
	if c.Upstream.TrailsMaxDistance <= 0 {
		errs = append(errs, "upstream.trails_max_distance must be positive")
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, "cache.ttl_seconds must not be negative")
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
