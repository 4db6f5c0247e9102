package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common"
	"github.com/gaze-network/epoch-schedule/core/issuance"
	"github.com/gaze-network/epoch-schedule/pkg/logger"
	"github.com/gaze-network/epoch-schedule/pkg/logger/slogx"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit   bool
	mu       sync.Mutex
	config   = &Config{}
	defaults = map[string]any{
		"logger.output":     "text",
		"logger.debug":      false,
		"network":           common.NetworkMainnet,
		"schedule.preset":   "", // issuance.PresetGradual unless epochs are set
		"schedule.decimals": issuance.DefaultDecimals,
	}
)

type Config struct {
	Logger   logger.Config   `mapstructure:"logger"`
	Network  common.Network  `mapstructure:"network"`
	Schedule issuance.Config `mapstructure:"schedule"`
}

// Parse reads the configuration from the given file (or ./config.yaml when empty) and environment variables.
// A missing config file is not an error.
func Parse(configFile ...string) (Config, error) {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

func parse(configFile ...string) (Config, error) {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if !errors.As(err, &errNotfound) {
			return Config{}, errors.Wrap(err, "invalid config file")
		}
		logger.DebugContext(ctx, "config file not found, use default value", slogx.Error(err))
	}

	next := &Config{}
	if err := viper.Unmarshal(next); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	// a custom table replaces the default preset
	if next.Schedule.Preset == "" && len(next.Schedule.Epochs) == 0 {
		next.Schedule.Preset = issuance.PresetGradual
	}
	config = next
	isInit = true
	logger.DebugContext(ctx, "loaded config", slogx.String("file", viper.ConfigFileUsed()))

	return *config, nil
}

// Load returns the parsed configuration, parsing defaults and environment variables on first use.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if !isInit {
		if _, err := parse(); err != nil {
			logger.Panic("failed to load config", slogx.Error(err))
		}
	}
	return *config
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}

// Reset clears viper state and the parsed configuration.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	viper.Reset()
	config = &Config{}
	isInit = false
}
