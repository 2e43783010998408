package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"bbcd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "BBCD_LOG_LEVEL")
	viper.BindEnv("collector.sourceUrl", "BBCD_SOURCE_URL")
	viper.BindEnv("collector.pollInterval", "BBCD_POLL_INTERVAL")
	viper.BindEnv("storage.dataDir", "BBCD_DATA_DIR")
	viper.BindEnv("mirror.enabled", "BBCD_MIRROR_ENABLED")
	viper.BindEnv("mirror.folderId", "BBCD_MIRROR_FOLDER_ID")
	viper.BindEnv("cache.enabled", "BBCD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "BBCD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "BacBoCollectorDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Mirror.TokenEnv == "" {
		conf.Mirror.TokenEnv = "BBCD_DRIVE_TOKEN"
	}
	if conf.Mirror.RequestTimeout == 0 {
		conf.Mirror.RequestTimeout = 30 * time.Second
	}
	if conf.Mirror.CheckInterval == 0 {
		conf.Mirror.CheckInterval = 15 * time.Second
	}
	if conf.Mirror.Cooldown == 0 {
		conf.Mirror.Cooldown = 90 * time.Second
	}
	if conf.Storage.ArchiveDir == "" {
		conf.Storage.ArchiveDir = filepath.Join(conf.Storage.DataDir, "archive")
	}
	if conf.Storage.RetentionDays == 0 {
		conf.Storage.RetentionDays = 7
	}
	if conf.Storage.ArchiveCron == "" {
		conf.Storage.ArchiveCron = "0 2 * * *"
	}
}
