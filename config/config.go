package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AstroAir/diffani-sub002/constants/lipgloss"
)

// Config represents the structure of the configuration file
type Config struct {
	Version        string `mapstructure:"version"`
	Engine         string `mapstructure:"engine"`
	FallbackPolicy string `mapstructure:"fallback_policy"`
	Theme          string `mapstructure:"theme"`
	Style          string `mapstructure:"style"`
	LogLevel       string `mapstructure:"log_level"`
	EnableCache    bool   `mapstructure:"enable_cache"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:        "0.3.0",
	Engine:         "chroma",
	FallbackPolicy: "plain",
	Theme:          "dracula",
	Style:          "terminal256",
	LogLevel:       "warn",
	EnableCache:    true,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("DIFFANI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if configType := GetConfigFileType(cfgFile); configType != "" {
			v.SetConfigType(configType)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("diffani-config")
		v.AddConfigPath(cwd)

		// Support both JSON and YAML formats
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				pterm.Debug.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	if rootCmd != nil {
		bindFlags(v, rootCmd)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("engine", DefaultConfig.Engine)
	v.SetDefault("fallback_policy", DefaultConfig.FallbackPolicy)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("style", DefaultConfig.Style)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("enable_cache", DefaultConfig.EnableCache)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("engine", "DIFFANI_ENGINE")
	_ = v.BindEnv("fallback_policy", "DIFFANI_FALLBACK_POLICY")
	_ = v.BindEnv("theme", "DIFFANI_THEME")
	_ = v.BindEnv("style", "DIFFANI_STYLE")
	_ = v.BindEnv("log_level", "DIFFANI_LOG_LEVEL")
	_ = v.BindEnv("enable_cache", "DIFFANI_ENABLE_CACHE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	_ = v.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	_ = v.BindPFlag("fallback_policy", rootCmd.PersistentFlags().Lookup("fallback_policy"))
	_ = v.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = v.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))
	_ = v.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to a configuration file (JSON or YAML).")
	rootCmd.PersistentFlags().String("engine", DefaultConfig.Engine, "Tokenizer engine: 'chroma' or 'treesitter'.")
	rootCmd.PersistentFlags().String("fallback_policy", DefaultConfig.FallbackPolicy, "What to do with code the engine cannot tokenize: 'plain' or 'strict'.")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Chroma style used when printing code (e.g., 'dracula', 'monokai', 'github').")
	rootCmd.PersistentFlags().String("style", DefaultConfig.Style, "Chroma terminal formatter (e.g., 'terminal16', 'terminal256', 'terminal16m').")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level: trace, debug, info, warn, error or disabled.")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Share the process-wide tokenizer cache between documents.")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version of the application.")
}

// SetConfigFile overrides the configuration file path.
func SetConfigFile(path string) {
	cfgFile = path
}

// ParseLogLevel maps a level name to a pterm log level.
func ParseLogLevel(level string) (pterm.LogLevel, error) {
	switch strings.ToLower(level) {
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	case "disabled", "off", "none":
		return pterm.LogLevelDisabled, nil
	default:
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger creates the structured logger described by the config.
func (c *Config) NewLogger() (*pterm.Logger, error) {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return pterm.DefaultLogger.WithLevel(level).WithWriter(os.Stderr), nil
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
