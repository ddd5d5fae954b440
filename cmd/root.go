package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/hlpack/internal/version"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hlpack [modules...]",
		Short:        "highlight.js bundle builder",
		Long:         `Build custom highlight.js bundles from a selection of language modules`,
		RunE:         runBuild,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
	}

	root.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)

	root.PersistentFlags().String("source-root", "", "highlight.js source directory")
	root.PersistentFlags().String("compiler", "", "Path to the Closure Compiler executable")
	root.PersistentFlags().String("themes", "", "Directory of .css themes to include in archives")
	root.PersistentFlags().String("versions", "", "TOML file with module versions")
	root.PersistentFlags().String("cache-dir", "", "Build cache directory")
	root.PersistentFlags().Duration("cache-ttl", 0, "How long compiled bundles stay cached (default 4h)")
	root.PersistentFlags().Bool("no-cache", false, "Disable build cache")
	root.PersistentFlags().Bool("strict-cache-key", false, "Include modules without a known version in cache keys")
	root.PersistentFlags().StringP("out", "o", "", "Output file or directory")
	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	addBuildFlags(root)

	root.AddCommand(newBuildCmd())
	root.AddCommand(newModulesCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newCacheCmd())

	return root
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
