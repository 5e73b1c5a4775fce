package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type SyncConfig struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	MirrorDB   `yaml:"mirror_db"`
	ShippingDB `yaml:"shipping_db"`
	ShopifyAPI `yaml:"shopify_api"`
	KafkaService `yaml:"kafka-service"`
	SyncTuning `yaml:"sync_tuning"`
	LogConfig  `yaml:"log_config"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MirrorDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

// ShippingDB is the optional secondary shipping-cost database.
type ShippingDB struct {
	Dsn string `yaml:"dsn"`
}

type ShopifyAPI struct {
	// StoreID scopes every mirror row; the service syncs one store.
	StoreID     string `yaml:"store_id" env:"SHOPIFY_STORE_ID"`
	ShopDomain  string `yaml:"shop_domain" env:"SHOPIFY_SHOP_DOMAIN"`
	AccessToken string `yaml:"access_token" env:"SHOPIFY_ACCESS_TOKEN"`
	APIVersion  string `yaml:"api_version" env-default:"2024-04"`
	PageSize    int    `yaml:"page_size" env-default:"250"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"sync-events"`
}

type SyncTuning struct {
	DefaultTimeframeDays    int           `yaml:"default_timeframe_days" env-default:"30"`
	WallClockBudget         time.Duration `yaml:"wall_clock_budget" env-default:"10m"`
	HeartbeatInterval       time.Duration `yaml:"heartbeat_interval" env-default:"30s"`
	StaleThreshold          time.Duration `yaml:"stale_threshold" env-default:"15m"`
	FailureThreshold        int           `yaml:"failure_threshold" env-default:"5"`
	RateLimitThreshold      int           `yaml:"rate_limit_threshold" env-default:"3"`
	FailureCooldown         time.Duration `yaml:"failure_cooldown" env-default:"5m"`
	RateLimitCooldown       time.Duration `yaml:"rate_limit_cooldown" env-default:"10m"`
	GateWorkers             int           `yaml:"gate_workers" env-default:"3"`
	InterCallDelay          time.Duration `yaml:"inter_call_delay" env-default:"500ms"`
	BackfillInterCallDelay  time.Duration `yaml:"backfill_inter_call_delay" env-default:"1s"`
	ReaperInterval          time.Duration `yaml:"reaper_interval" env-default:"15m"`
	CostRefreshInterval     time.Duration `yaml:"cost_refresh_interval" env-default:"24h"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

func MustLoad() *SyncConfig {

	// Processing env config variable and file
	configPath := os.Getenv("SYNC_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("SYNC_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg SyncConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
