package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/hlpack/internal/builder"
	"github.com/Norgate-AV/hlpack/internal/config"
	"github.com/Norgate-AV/hlpack/internal/logger"
	"github.com/Norgate-AV/hlpack/internal/utils"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true)
)

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "modules",
		Short:        "List known language modules",
		Long:         `List the language modules of the version table and whether their source file exists.`,
		Args:         cobra.NoArgs,
		RunE:         runModules,
		SilenceUsage: true,
	}
}

func runModules(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd)
	if err != nil {
		return err
	}

	b, err := newBuilder(cfg, logger.New(os.Stderr, cfg.Verbose))
	if err != nil {
		return err
	}

	printModules(cmd.OutOrStdout(), b)
	return nil
}

func printModules(w io.Writer, b *builder.Builder) {
	versions := b.Versions()

	for _, name := range versions.Names() {
		v, _ := versions.Version(name)
		line := fmt.Sprintf("%-16s v%s", name, v)

		if !utils.IsRegular(b.PathForModule(name)) {
			line += missingStyle.Render(" (missing)")
		}

		fmt.Fprintln(w, line)
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "info",
		Short:        "Show build environment information",
		Args:         cobra.NoArgs,
		RunE:         runInfo,
		SilenceUsage: true,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd)
	if err != nil {
		return err
	}

	b, err := newBuilder(cfg, logger.New(os.Stderr, cfg.Verbose))
	if err != nil {
		return err
	}

	if err := b.VerifyPreconditions(); err != nil {
		return err
	}

	coreVersion, err := b.CurrentCoreVersion()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Core version:"), coreVersion)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Source root: "), cfg.SourceRoot)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Compiler:    "), cfg.CompilerPath)
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Modules:     "), len(b.Versions()))

	return nil
}
