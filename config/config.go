package config

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	logging "github.com/ipfs/go-log"
	"github.com/spf13/viper"
)

// Logger
var log = logging.Logger("config")

const (
	defaultConfigPath = ".tracegen"
)

// Supported fields.
const (
	FieldGoldilocks = "goldilocks"
	FieldBn254      = "bn254"
)

type Config struct {
	// Global
	GlobalLoggingLevel string        `mapstructure:"LOGGING"`     // Log Level: FATAL, PANIC, ERROR, WARN, INFO, DEBUG.
	Path               string        `mapstructure:"DATA_DIR"`    // Main datastore path.
	KernelPath         string        `mapstructure:"KERNEL_PATH"` // Kernel json file.
	DSTimeout          time.Duration `mapstructure:"DS_TIMEOUT"`  // Datastore timeout.
	Field              string        `mapstructure:"FIELD"`       // Trace field: goldilocks, bn254.

	// Witness store
	WitnessCacheSize int           `mapstructure:"WITNESS_CACHE_SIZE"` // Witnesses kept in memory.
	WitnessRetention time.Duration `mapstructure:"WITNESS_RETENTION"`  // How long witnesses are kept.
	WitnessGCPeriod  time.Duration `mapstructure:"WITNESS_GC_PERIOD"`  // Witness store GC period.
}

// Default configs
var DefaultConfig Config = Config{
	Path:               ".tracegen",
	KernelPath:         "kernel.json",
	GlobalLoggingLevel: "INFO",
	DSTimeout:          5 * time.Second,
	Field:              FieldGoldilocks,
	WitnessCacheSize:   16,
	WitnessRetention:   24 * time.Hour,
	WitnessGCPeriod:    30 * time.Minute,
}

// NewConfig creates a new configuration.
//
// @output - configuration, error.
func NewConfig(configFile string) (Config, error) {
	// Try to load config file from $HOME/.tracegen
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/" + defaultConfigPath)
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	v.AutomaticEnv()
	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return Config{}, err
		}
		log.Debugf("No config file found, use env and defaults")
	}

	conf := Config{}

	// Parse global config
	conf.GlobalLoggingLevel = v.GetString("LOGGING")
	if conf.GlobalLoggingLevel == "" {
		conf.GlobalLoggingLevel = DefaultConfig.GlobalLoggingLevel
	}
	logLevel, err := logging.LevelFromString(conf.GlobalLoggingLevel)
	if err != nil {
		return Config{}, err
	}
	logging.SetAllLoggers(logLevel)
	conf.Path = v.GetString("DATA_DIR")
	if conf.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		conf.Path = filepath.Join(home, DefaultConfig.Path)
		log.Infof("DATA_DIR not defined, use default: %v", conf.Path)
	}
	conf.KernelPath = v.GetString("KERNEL_PATH")
	if conf.KernelPath == "" {
		conf.KernelPath = filepath.Join(conf.Path, DefaultConfig.KernelPath)
		log.Infof("KERNEL_PATH not defined, use default: %v", conf.KernelPath)
	}
	conf.DSTimeout = v.GetDuration("DS_TIMEOUT")
	if conf.DSTimeout <= 0 {
		conf.DSTimeout = DefaultConfig.DSTimeout
		log.Infof("Invalid DS_TIMEOUT found, use default: %v", conf.DSTimeout)
	}
	conf.Field = strings.ToLower(v.GetString("FIELD"))
	if conf.Field != FieldGoldilocks && conf.Field != FieldBn254 {
		conf.Field = DefaultConfig.Field
		log.Infof("FIELD is not one of [%v,%v], use default: %v", FieldGoldilocks, FieldBn254, conf.Field)
	}

	// Parse witness store config
	conf.WitnessCacheSize = v.GetInt("WITNESS_CACHE_SIZE")
	if conf.WitnessCacheSize <= 0 {
		conf.WitnessCacheSize = DefaultConfig.WitnessCacheSize
		log.Infof("Invalid WITNESS_CACHE_SIZE found, use default: %v", conf.WitnessCacheSize)
	}
	conf.WitnessRetention = v.GetDuration("WITNESS_RETENTION")
	if conf.WitnessRetention < time.Minute {
		conf.WitnessRetention = DefaultConfig.WitnessRetention
		log.Infof("WITNESS_RETENTION is smaller than min 1m, use default %v", conf.WitnessRetention)
	}
	conf.WitnessGCPeriod = v.GetDuration("WITNESS_GC_PERIOD")
	if conf.WitnessGCPeriod < time.Minute {
		conf.WitnessGCPeriod = DefaultConfig.WitnessGCPeriod
		log.Infof("WITNESS_GC_PERIOD is smaller than min 1m, use default %v", conf.WitnessGCPeriod)
	}

	return conf, nil
}
