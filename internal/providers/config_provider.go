package providers

import (
	"cibgen/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CIB_LOG_LEVEL")
	viper.BindEnv("snapshots.dir", "CIB_SNAPSHOTS_DIR")
	viper.BindEnv("snapshots.archiveAfter", "CIB_ARCHIVE_AFTER")
	viper.BindEnv("artifacts.badgesDir", "CIB_BADGES_DIR")
	viper.BindEnv("artifacts.historyDir", "CIB_HISTORY_DIR")
	viper.BindEnv("cache.enabled", "CIB_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CIB_CACHE_SIZE")

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

	conf.AppName = "CustomIntegrationBadgeGenerator"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
