package config

import (
	"os"

	postgres_wrapper "github.com/joripage/ordervalidation-dev/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/ordervalidation-dev/pkg/infra/redis"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ServiceName  string                           `yaml:"service_name"`
	ValidationDB *postgres_wrapper.PostgresConfig `yaml:"validation_db"`
	Redis        *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka        *KafkaConfig                     `yaml:"kafka"`
	Fix          *FixConfig                       `yaml:"fix"`
	Validation   *ValidationConfig                `yaml:"validation"`
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	AuditTopic    string   `yaml:"audit_topic"`
	AuditGroupID  string   `yaml:"audit_group_id"`
	AuditDLQTopic string   `yaml:"audit_dlq_topic"`
}

type FixConfig struct {
	ConfigFilepath string `yaml:"config_filepath"`
}

type ValidationConfig struct {
	LegEquality             string          `yaml:"leg_equality"`
	RefreshIntervalSeconds  int             `yaml:"refresh_interval_seconds"`
	HistoryLimit            int             `yaml:"history_limit"`
	SnapshotCacheKey        string          `yaml:"snapshot_cache_key"`
	SnapshotCacheTTLSeconds int             `yaml:"snapshot_cache_ttl_seconds"`
	Accounts                []AccountConfig `yaml:"accounts"`
}

// AccountConfig seeds the account directory for accounts that have no
// upstream account service entry.
type AccountConfig struct {
	ID      string `yaml:"id"`
	Country string `yaml:"country"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
