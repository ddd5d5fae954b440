package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_SetupViperDefaults(t *testing.T) {
	viper.Reset()
	loader := NewLoader()
	loader.setupViperDefaults()

	assert.Equal(t, "src", viper.GetString("source_root"))
	assert.Equal(t, "/usr/local/bin/closure-compiler", viper.GetString("compiler_path"))
	assert.Equal(t, "highlight.js", viper.GetString("product_name"))
	assert.Equal(t, 4*time.Hour, viper.GetDuration("cache_ttl"))
	assert.Equal(t, false, viper.GetBool("no_cache"))
	assert.Equal(t, false, viper.GetBool("verbose"))
}

func TestLoader_LoadGlobalConfig(t *testing.T) {
	// Create a temporary APPDATA directory
	tempDir := t.TempDir()
	appDir := filepath.Join(tempDir, "hlpack")
	err := os.Mkdir(appDir, 0o755)
	require.NoError(t, err)

	t.Run("loads yaml config", func(t *testing.T) {
		viper.Reset()
		configPath := filepath.Join(appDir, "config.yml")
		configContent := `compiler_path: "/opt/closure/compiler"
cache_ttl: "2h"
verbose: true`
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)
		t.Cleanup(func() { os.Remove(configPath) })

		t.Setenv("APPDATA", tempDir)

		loader := NewLoader()
		loader.loadGlobalConfig()

		assert.Equal(t, "/opt/closure/compiler", viper.GetString("compiler_path"))
		assert.Equal(t, 2*time.Hour, viper.GetDuration("cache_ttl"))
		assert.Equal(t, true, viper.GetBool("verbose"))
	})

	t.Run("loads toml config", func(t *testing.T) {
		viper.Reset()
		configPath := filepath.Join(appDir, "config.toml")
		configContent := `compiler_path = "/usr/bin/closure"
theme_dir = "/srv/themes"`
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)
		t.Cleanup(func() { os.Remove(configPath) })

		t.Setenv("APPDATA", tempDir)

		loader := NewLoader()
		loader.loadGlobalConfig()

		assert.Equal(t, "/usr/bin/closure", viper.GetString("compiler_path"))
		assert.Equal(t, "/srv/themes", viper.GetString("theme_dir"))
	})

	t.Run("handles missing config gracefully", func(t *testing.T) {
		viper.Reset()
		t.Setenv("APPDATA", t.TempDir())

		loader := NewLoader()

		assert.NotPanics(t, func() {
			loader.loadGlobalConfig()
		})
		assert.Empty(t, viper.GetString("compiler_path"))
	})
}

func TestLoader_LoadLocalConfig(t *testing.T) {
	t.Run("loads local config from working directory", func(t *testing.T) {
		viper.Reset()

		tempDir := t.TempDir()
		configPath := filepath.Join(tempDir, ".hlpack.yml")
		configContent := `source_root: "vendor/highlight"
theme_dir: "styles"`
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		chdir(t, tempDir)

		loader := NewLoader()
		loader.loadLocalConfig()

		assert.Equal(t, "vendor/highlight", viper.GetString("source_root"))
		assert.Equal(t, "styles", viper.GetString("theme_dir"))
	})

	t.Run("walks up directory tree to find config", func(t *testing.T) {
		viper.Reset()

		tempDir := t.TempDir()
		subDir := filepath.Join(tempDir, "subdir", "nested")
		err := os.MkdirAll(subDir, 0o755)
		require.NoError(t, err)

		// Put config in parent directory
		configPath := filepath.Join(tempDir, ".hlpack.json")
		err = os.WriteFile(configPath, []byte(`{"product_name": "hljs"}`), 0o644)
		require.NoError(t, err)

		chdir(t, subDir)

		loader := NewLoader()
		loader.loadLocalConfig()

		assert.Equal(t, "hljs", viper.GetString("product_name"))
	})
}

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("source-root", "", "")
	cmd.Flags().String("compiler", "", "")
	cmd.Flags().String("themes", "", "")
	cmd.Flags().String("versions", "", "")
	cmd.Flags().String("cache-dir", "", "")
	cmd.Flags().Duration("cache-ttl", 0, "")
	cmd.Flags().Bool("no-cache", false, "")
	cmd.Flags().Bool("strict-cache-key", false, "")
	cmd.Flags().StringP("out", "o", "", "")
	cmd.Flags().BoolP("verbose", "v", false, "")

	return cmd
}

func TestLoader_BindCommandFlags(t *testing.T) {
	viper.Reset()

	cmd := newTestCommand()

	// Set flag values
	require.NoError(t, cmd.Flags().Set("compiler", "/opt/closure/compiler"))
	require.NoError(t, cmd.Flags().Set("no-cache", "true"))
	require.NoError(t, cmd.Flags().Set("cache-ttl", "15m"))
	require.NoError(t, cmd.Flags().Set("out", "dist"))

	loader := NewLoader()
	loader.bindCommandFlags(cmd)

	assert.Equal(t, "/opt/closure/compiler", viper.GetString("compiler_path"))
	assert.Equal(t, true, viper.GetBool("no_cache"))
	assert.Equal(t, 15*time.Minute, viper.GetDuration("cache_ttl"))
	assert.Equal(t, "dist", viper.GetString("out"))
}

func TestLoader_BindCommandFlags_MissingFlags(t *testing.T) {
	viper.Reset()

	assert.NotPanics(t, func() {
		NewLoader().bindCommandFlags(&cobra.Command{})
	})
}

func TestLoader_LoadForBuild_Integration(t *testing.T) {
	t.Run("hierarchical config loading - flags override local override global", func(t *testing.T) {
		viper.Reset()

		// Global config
		appData := t.TempDir()
		appDir := filepath.Join(appData, "hlpack")
		require.NoError(t, os.Mkdir(appDir, 0o755))

		globalContent := `compiler_path: "/global/closure-compiler"
product_name: "global"
verbose: false`
		err := os.WriteFile(filepath.Join(appDir, "config.yml"), []byte(globalContent), 0o644)
		require.NoError(t, err)

		// Local config
		localDir := t.TempDir()
		localContent := `product_name: "local"
verbose: true`
		err = os.WriteFile(filepath.Join(localDir, ".hlpack.yml"), []byte(localContent), 0o644)
		require.NoError(t, err)

		t.Setenv("APPDATA", appData)
		chdir(t, localDir)

		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("source-root", "hljs"))

		loader := NewLoader()
		cfg, err := loader.LoadForBuild(cmd)
		require.NoError(t, err)

		// Flag value should win
		assert.Equal(t, filepath.Join(localDir, "hljs"), cfg.SourceRoot)
		// Local config should override global
		assert.Equal(t, "local", cfg.ProductName)
		assert.Equal(t, true, cfg.Verbose)
		// Global config is kept for keys the local config does not set
		assert.Equal(t, abs(t, "/global/closure-compiler"), cfg.CompilerPath)
	})
}
