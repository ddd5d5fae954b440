package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/hlpack/internal/builder"
	"github.com/Norgate-AV/hlpack/internal/cache"
	"github.com/Norgate-AV/hlpack/internal/config"
	"github.com/Norgate-AV/hlpack/internal/logger"
	"github.com/Norgate-AV/hlpack/internal/modules"
	"github.com/Norgate-AV/hlpack/internal/utils"
)

// DefaultArchiveName is used when --archive is given without --out
const DefaultArchiveName = "highlight.zip"

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "build [modules...]",
		Short:        "Build a highlight.js bundle",
		Long:         `Compile the core and the selected language modules into one minified file, or package them as a zip archive.`,
		RunE:         runBuild,
		SilenceUsage: true,
	}

	addBuildFlags(cmd)

	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("archive", "a", false, "Create a zip archive instead of a compiled bundle")
	cmd.Flags().Bool("all", false, "Include every known module")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd)
	if err != nil {
		return err
	}

	l := logger.New(os.Stderr, cfg.Verbose)

	b, err := newBuilder(cfg, l)
	if err != nil {
		return err
	}

	if cmd == cmd.Root() {
		if err := checkMistypedCommand(cmd, b, args); err != nil {
			return err
		}
	}

	names := moduleArgs(args)

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	if all {
		names = append(names, b.Versions().Names()...)
	}

	archive, err := cmd.Flags().GetBool("archive")
	if err != nil {
		return err
	}

	if archive {
		return buildArchive(b, cfg, l, names)
	}

	return buildBundle(b, cfg, l, names)
}

func buildArchive(b *builder.Builder, cfg *config.Config, l *log.Logger, names []string) error {
	data, err := b.Archive(names)
	if err != nil {
		return err
	}

	out := resolveOutputPath(cfg.OutputPath, DefaultArchiveName)
	if err := utils.WriteFile(out, data); err != nil {
		return err
	}

	l.Info("archive written", "path", out, "modules", len(modules.Normalize(names)))
	return nil
}

func buildBundle(b *builder.Builder, cfg *config.Config, l *log.Logger, names []string) error {
	var store cache.Store
	if !cfg.NoCache {
		bolt, err := cache.Open(cfg.CacheDir)
		if err != nil {
			return err
		}

		defer bolt.Close()
		store = bolt
	}

	res, err := b.Compile(names, store)
	if err != nil {
		return err
	}

	for _, file := range res.Files {
		l.Debug("included", "file", file)
	}

	out := resolveOutputPath(cfg.OutputPath, res.Name)
	if err := utils.WriteFile(out, []byte(res.Output)); err != nil {
		return err
	}

	l.Info("bundle written", "path", out, "modules", len(res.Modules), "cached", res.Cached)
	return nil
}

// newBuilder creates a Builder from the loaded configuration
func newBuilder(cfg *config.Config, l *log.Logger) (*builder.Builder, error) {
	versions := modules.DefaultTable()

	if cfg.VersionsFile != "" {
		t, err := modules.LoadTable(cfg.VersionsFile)
		if err != nil {
			return nil, err
		}

		versions = t
	}

	return builder.New(builder.Config{
		SourceRoot:     cfg.SourceRoot,
		CompilerPath:   cfg.CompilerPath,
		ThemeDir:       cfg.ThemeDir,
		ProductName:    cfg.ProductName,
		Versions:       versions,
		CacheTTL:       cfg.CacheTTL,
		StrictCacheKey: cfg.StrictCacheKey,
		Logger:         l,
	}), nil
}

// checkMistypedCommand rejects a first argument that is neither a module nor
// a subcommand but close to a subcommand name, such as "buidl"
func checkMistypedCommand(cmd *cobra.Command, b *builder.Builder, args []string) error {
	if len(args) == 0 {
		return nil
	}

	name := strings.ToLower(strings.TrimSpace(args[0]))
	if _, ok := b.Versions().Version(name); ok || utils.IsRegular(b.PathForModule(name)) {
		return nil
	}

	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		return fmt.Errorf("unknown command %q for %q, did you mean %q?", args[0], cmd.CommandPath(), suggestions[0])
	}

	return nil
}

// moduleArgs accepts modules as separate arguments and as comma separated lists
func moduleArgs(args []string) []string {
	var names []string
	for _, arg := range args {
		names = append(names, modules.Split(arg)...)
	}

	return modules.Normalize(names)
}

// resolveOutputPath returns out, or defaultName inside out when out is a
// directory, or defaultName in the working directory when out is empty
func resolveOutputPath(out, defaultName string) string {
	if out == "" {
		return defaultName
	}

	if utils.IsDir(out) {
		return filepath.Join(out, defaultName)
	}

	return out
}
