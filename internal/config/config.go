package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/hlpack/internal/cache"
)

// Default configuration values
const (
	DefaultSourceRoot   = "src"
	DefaultCompilerPath = "/usr/local/bin/closure-compiler"
	DefaultProductName  = "highlight.js"
	DefaultCacheTTL     = cache.DefaultTTL
	DefaultVerbose      = false
	DefaultNoCache      = false
)

// Holds the configuration options for hlpack
type Config struct {
	// Directory containing highlight.js and languages/
	SourceRoot string

	// Path to the Closure Compiler executable
	CompilerPath string

	// Optional directory of .css themes added to archives
	ThemeDir string

	// Product name written to the compiled bundle header
	ProductName string

	// Optional TOML file overriding the built-in module versions
	VersionsFile string

	// Directory of the persistent bundle cache
	CacheDir string

	// How long compiled bundles stay cached
	CacheTTL time.Duration

	// Disable the bundle cache
	NoCache bool

	// Include modules without a known version in cache keys
	StrictCacheKey bool

	// Output file or directory
	OutputPath string

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		SourceRoot:     viper.GetString("source_root"),
		CompilerPath:   viper.GetString("compiler_path"),
		ThemeDir:       viper.GetString("theme_dir"),
		ProductName:    viper.GetString("product_name"),
		VersionsFile:   viper.GetString("versions_file"),
		CacheDir:       viper.GetString("cache_dir"),
		CacheTTL:       viper.GetDuration("cache_ttl"),
		NoCache:        viper.GetBool("no_cache"),
		StrictCacheKey: viper.GetBool("strict_cache_key"),
		OutputPath:     viper.GetString("out"),
		Verbose:        viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = DefaultSourceRoot
	}

	if cfg.CompilerPath == "" {
		cfg.CompilerPath = DefaultCompilerPath
	}

	if cfg.ProductName == "" {
		cfg.ProductName = DefaultProductName
	}

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid cache ttl: %s", c.CacheTTL)
	}

	// Resolve paths
	for _, p := range []*string{&c.SourceRoot, &c.CompilerPath, &c.ThemeDir, &c.VersionsFile, &c.CacheDir, &c.OutputPath} {
		if *p == "" {
			continue
		}

		abs, err := filepath.Abs(*p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %v", *p, err)
		}

		*p = abs
	}

	return nil
}
