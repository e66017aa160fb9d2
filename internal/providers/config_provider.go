package providers

import (
	"fmt"
	"path/filepath"
	"storemon/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("reports.workers", 10)
	viper.SetDefault("reports.queueSize", 128)
	viper.SetDefault("reports.anchorTTL", "5m")
	viper.SetDefault("reports.maxDuration", "10m")
	viper.SetDefault("reports.retentionTTL", "168h")
	viper.SetDefault("reports.sweepInterval", "1h")
	viper.SetDefault("reports.defaultTimezone", "America/Chicago")
	viper.SetDefault("database.sslMode", "disable")

	viper.BindEnv("logger.level", "STOREMON_LOG_LEVEL")
	viper.BindEnv("reports.workers", "STOREMON_REPORT_WORKERS")
	viper.BindEnv("database.enabled", "STOREMON_DB_ENABLED")
	viper.BindEnv("database.password", "STOREMON_DB_PASSWORD")
	viper.BindEnv("cache.enabled", "STOREMON_CACHE_ENABLED")
	viper.BindEnv("cache.size", "STOREMON_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "StoreMonitoringDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
