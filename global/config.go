package global

import (
	"github.com/go-redis/redis_rate/v10"
	cfg "github.com/mailio/go-web3-kit/config"
)

// Conf global config
var Conf Config

// Global rate limiter
var RateLimiter *redis_rate.Limiter

type Config struct {
	cfg.YamlConfig `yaml:",inline"`
	CouchDB        CouchDBConfig    `yaml:"couchdb"`
	Redis          RedisConfig      `yaml:"redis"`
	Queue          Queue            `yaml:"queue"`
	Prometheus     PrometheusConfig `yaml:"prometheus"`
	Storage        StorageConfig    `yaml:"storage"`
	WaxSeal        WaxSealConfig    `yaml:"waxseal"`
}

type CouchDBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Scheme   string `yaml:"scheme"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	Username string `yaml:"username"`
}

type Queue struct {
	Concurrency int `yaml:"concurrency"`
}

type PrometheusConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type StorageConfig struct {
	Type   string `yaml:"type"`
	Key    string `yaml:"key"`
	Secret string `yaml:"secret"`
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
}

// WaxSealConfig holds the mail-merge workflow settings
type WaxSealConfig struct {
	AutosaveDelayMs       int              `yaml:"autosaveDelayMs"`       // debounce window for remote campaign writes (default 2000)
	HydrationGraceMs      int              `yaml:"hydrationGraceMs"`      // autosave suppression window after hydration (default 3000)
	EditingPaths          []string         `yaml:"editingPaths"`          // client location prefixes where autosave is allowed
	SessionMaxIdleDays    int              `yaml:"sessionMaxIdleDays"`    // anonymous sessions idle longer than this get swept
	SessionSweepFrequency string           `yaml:"sessionSweepFrequency"` // cron spec, e.g. "@every 12h"
	Checkout              ProviderEndpoint `yaml:"checkout"`
	SealImage             ProviderEndpoint `yaml:"sealImage"`
}

type ProviderEndpoint struct {
	URL    string `yaml:"url"`
	ApiKey string `yaml:"apikey"`
}
