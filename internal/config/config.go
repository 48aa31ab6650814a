package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (e.g., LCATRACE_DB)
const EnvPrefix = "LCATRACE"

// DefaultConfigFile is read from the home directory when no --config is given
const DefaultConfigFile = ".lcatrace.yaml"

// DBPath returns the inventory database from the LCATRACE_DB env var,
// falling back to the XDG data directory.
func DBPath() string {
	if env := os.Getenv("LCATRACE_DB"); env != "" {
		return env
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lcatrace", "inventory.db")
}

// Traversal holds the printer parameters of one report kind
type Traversal struct {
	Amount     float64 `mapstructure:"amount"`
	MaxLevel   int     `mapstructure:"max_level"`
	Cutoff     float64 `mapstructure:"cutoff"`
	LabelWidth int     `mapstructure:"label_width"`
}

// Settings is the merged configuration: defaults, config file, environment
type Settings struct {
	DB          string        `mapstructure:"db"`
	Method      string        `mapstructure:"method"`
	Indent      string        `mapstructure:"indent"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	SupplyChain Traversal     `mapstructure:"supply_chain"`
	Recursive   Traversal     `mapstructure:"recursive"`
}

// New returns a viper instance with lcatrace defaults and environment
// binding. Flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("db", DBPath())
	v.SetDefault("method", "")
	v.SetDefault("indent", "  ")
	v.SetDefault("cache_ttl", 10*time.Minute)

	v.SetDefault("supply_chain.amount", 1.0)
	v.SetDefault("supply_chain.max_level", 7)
	v.SetDefault("supply_chain.cutoff", 0.005)

	v.SetDefault("recursive.amount", 1.0)
	v.SetDefault("recursive.max_level", 3)
	v.SetDefault("recursive.cutoff", 0.0025)
	v.SetDefault("recursive.label_width", 130)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile (or ~/.lcatrace.yaml when empty) into v and decodes
// the settings. A missing default file is not an error; a missing explicit
// one is.
func Load(v *viper.Viper, cfgFile string) (*Settings, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, DefaultConfigFile))
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case cfgFile == "" && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &s, nil
}
