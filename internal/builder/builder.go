// Package builder assembles highlight.js bundles.
//
// A Builder resolves language modules to source files under a source root
// and produces either a zip archive of the individual files or one file
// compiled by Closure Compiler. Compiled bundles can be cached under a key
// derived from the module version summary and the core version.
package builder

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Norgate-AV/hlpack/internal/cache"
	"github.com/Norgate-AV/hlpack/internal/compiler"
	"github.com/Norgate-AV/hlpack/internal/modules"
	"github.com/Norgate-AV/hlpack/internal/utils"
)

const (
	// DefaultProductName is used in the rewritten bundle header
	DefaultProductName = "highlight.js"

	coreName   = "highlight"
	sourceExt  = ".js"
	minExt     = ".min.js"
	moduleDir  = "languages"
	themesDir  = "themes"
	themeExt   = ".css"
	customName = "-custom"
)

// Runner runs the external compiler
type Runner interface {
	Run(compilerPath string, args []string) (*compiler.Output, error)
}

// Config holds everything a Builder needs
type Config struct {
	// SourceRoot contains highlight.js and the languages/ directory
	SourceRoot string

	// CompilerPath is the Closure Compiler executable
	CompilerPath string

	// ThemeDir holds optional .css themes for archives
	ThemeDir string

	// ProductName is written into the compiled bundle header
	ProductName string

	// Versions is the module version table, DefaultTable if nil
	Versions modules.Table

	// CacheTTL is how long compiled bundles are cached, cache.DefaultTTL if zero
	CacheTTL time.Duration

	// StrictCacheKey adds modules missing from Versions to the cache key
	StrictCacheKey bool

	Runner Runner
	Logger *log.Logger
}

// Builder produces bundles for a set of language modules
type Builder struct {
	root         string
	compilerPath string
	themeDir     string
	productName  string
	versions     modules.Table
	ttl          time.Duration
	strictKey    bool
	runner       Runner
	logger       *log.Logger
}

// New creates a Builder, filling in defaults for unset fields
func New(cfg Config) *Builder {
	b := &Builder{
		root:         cfg.SourceRoot,
		compilerPath: cfg.CompilerPath,
		themeDir:     cfg.ThemeDir,
		productName:  cfg.ProductName,
		versions:     cfg.Versions,
		ttl:          cfg.CacheTTL,
		strictKey:    cfg.StrictCacheKey,
		runner:       cfg.Runner,
		logger:       cfg.Logger,
	}

	if b.productName == "" {
		b.productName = DefaultProductName
	}

	if b.versions == nil {
		b.versions = modules.DefaultTable()
	}

	if b.ttl <= 0 {
		b.ttl = cache.DefaultTTL
	}

	if b.runner == nil {
		b.runner = compiler.New()
	}

	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}

	return b
}

// PathForModule returns the source file of a module. The file may not exist.
func (b *Builder) PathForModule(name string) string {
	return filepath.Join(b.root, moduleDir, name+sourceExt)
}

// CoreFilePath returns the core runtime file
func (b *Builder) CoreFilePath() string {
	return filepath.Join(b.root, coreName+sourceExt)
}

// MinifiedCoreFilePath returns the pre-minified sibling of the core file
func (b *Builder) MinifiedCoreFilePath() string {
	core := b.CoreFilePath()
	return strings.TrimSuffix(core, sourceExt) + minExt
}

// Versions returns the module version table in use
func (b *Builder) Versions() modules.Table {
	return b.versions
}

// VerifyPreconditions checks that the source root and compiler exist
func (b *Builder) VerifyPreconditions() error {
	if !utils.IsDir(b.root) {
		return fmt.Errorf("%w: source root %q is not a directory", ErrEnvironment, b.root)
	}

	if !utils.IsRegular(b.compilerPath) {
		return fmt.Errorf("%w: compiler %q is not a file", ErrEnvironment, b.compilerPath)
	}

	return nil
}

// VersionSummary renders the tracked modules of the set with their versions
func (b *Builder) VersionSummary(names []string) string {
	return b.versions.Summary(names)
}

// CacheKey returns the cache key of a module set built against coreVersion
func (b *Builder) CacheKey(names []string, coreVersion string) string {
	summary := b.versions.Summary(names)

	if b.strictKey {
		if untracked := b.versions.Untracked(names); len(untracked) > 0 {
			summary += " | untracked: " + strings.Join(untracked, ", ")
		}
	}

	return cache.Key(summary, coreVersion)
}

// IncludedFiles returns the files passed to the compiler: the core file
// first, then every requested module whose file exists
func (b *Builder) IncludedFiles(names []string) []string {
	files := []string{b.CoreFilePath()}

	for _, name := range modules.Normalize(names) {
		if !modules.ValidName(name) {
			continue
		}

		path := b.PathForModule(name)
		if utils.IsRegular(path) {
			files = append(files, path)
		}
	}

	return files
}

// OutputName returns the file name of a compiled bundle
func (b *Builder) OutputName(names []string) string {
	if len(modules.Normalize(names)) == 0 {
		return coreName + minExt
	}

	return coreName + customName + minExt
}
