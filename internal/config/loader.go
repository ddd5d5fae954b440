package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configExts are the config file formats viper reads
var configExts = []string{"yml", "yaml", "json", "toml"}

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForBuild loads configuration for a command run from the working directory
func (l *Loader) LoadForBuild(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig()
	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("source_root", DefaultSourceRoot)
	viper.SetDefault("compiler_path", DefaultCompilerPath)
	viper.SetDefault("product_name", DefaultProductName)
	viper.SetDefault("cache_ttl", DefaultCacheTTL)
	viper.SetDefault("no_cache", DefaultNoCache)
	viper.SetDefault("verbose", DefaultVerbose)
}

// globalConfigDir returns the directory of the user wide config file
func globalConfigDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "hlpack")
	}

	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "hlpack")
	}

	return ""
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	globalDir := globalConfigDir()
	if globalDir == "" {
		return
	}

	for _, ext := range configExts {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.MergeInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig loads the nearest project configuration
func (l *Loader) loadLocalConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		return // silently ignore, config.Load() will handle validation
	}

	localPath := FindLocalConfig(cwd)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.MergeInConfig()
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	flags := map[string]string{
		"source_root":      "source-root",
		"compiler_path":    "compiler",
		"theme_dir":        "themes",
		"versions_file":    "versions",
		"cache_dir":        "cache-dir",
		"cache_ttl":        "cache-ttl",
		"no_cache":         "no-cache",
		"strict_cache_key": "strict-cache-key",
		"out":              "out",
		"verbose":          "verbose",
	}

	for key, name := range flags {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}
