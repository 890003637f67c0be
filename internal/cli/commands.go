package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skilldock/skilldock/internal/version"
	"github.com/skilldock/skilldock/pkg/cobrax/topics"
	"github.com/skilldock/skilldock/pkg/config"
	"github.com/skilldock/skilldock/pkg/filesystem"
	"github.com/skilldock/skilldock/pkg/logging"
	"github.com/skilldock/skilldock/pkg/paths"
	"github.com/skilldock/skilldock/pkg/reconciler"
	"github.com/skilldock/skilldock/pkg/style"
)

//go:embed help/*
var helpFiles embed.FS

// rootFlags holds values bound to persistent flags on the root command.
type rootFlags struct {
	verbosity int
	dryRun    bool
	format    string
}

// NewRootCmd creates the root command with all subcommands attached.
// Running the root command with no arguments performs the reconciliation.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "skilldock",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v",
		"Increase verbosity (-v for info, -vv for debug, -vvv for trace)")
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "auto",
		"Output format: auto, term, or text")
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false,
		"Show what would happen without making changes")

	rootCmd.AddCommand(
		newLinkCmd(flags),
		newStatusCmd(flags),
		newGenConfigCmd(),
		newVersionCmd(),
	)

	rootCmd.CompletionOptions.DisableDefaultCmd = false
	rootCmd.DisableAutoGenTag = true

	helpFS, err := fs.Sub(helpFiles, "help")
	if err == nil {
		_ = topics.Initialize(rootCmd, helpFS, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

func newLinkCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: MsgLinkShort,
		Long: `Evaluates every configured consumer location and makes it a symlink to
the shared skills directory. Existing real directories are renamed to a
.backup sibling before the link is created; locations already holding a
symlink are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false,
		"Show what would happen without making changes")
	return cmd
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long: `Classifies every configured consumer location without modifying anything:
whether it is linked to the shared directory, links somewhere else, holds
a real directory that would be backed up, or does not exist yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, flags)
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	var effective bool
	var write bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long: `Prints the default configuration with all values commented out, ready to
be saved and edited. With --effective, prints the fully resolved current
configuration instead. With --write, saves the default configuration to
the user config path (refusing to overwrite an existing file).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New()
			if err != nil {
				return err
			}

			if effective {
				cfg, err := config.Load(p)
				if err != nil {
					return err
				}
				content, err := config.MarshalEffective(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			content := config.GenerateConfigContent()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			dest := p.ConfigFilePath()
			if _, err := os.Stat(dest); err == nil {
				return fmt.Errorf("config file already exists: %s", dest)
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false,
		"Print the resolved configuration currently in effect")
	cmd.Flags().BoolVar(&write, "write", false,
		"Write the default configuration to the user config path")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skilldock %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

// runLink performs the reconciliation run and renders the report.
func runLink(cmd *cobra.Command, flags *rootFlags) error {
	logger := logging.GetLogger("cli")

	p, err := paths.New()
	if err != nil {
		return err
	}

	cfg, err := config.Load(p)
	if err != nil {
		return err
	}

	sharedDir := cfg.ResolveSharedDir(p)
	targets := cfg.ResolveTargets(p)
	logger.Debug().
		Str("sharedDir", sharedDir).
		Int("targets", len(targets)).
		Bool("dryRun", flags.dryRun).
		Msg("starting reconciliation")

	r := reconciler.New(filesystem.NewOS(), reconciler.Options{DryRun: flags.dryRun})
	report, err := r.Run(sharedDir, targets)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := style.NewRenderer(resolveFormat(flags.format))
	for _, res := range report.Results {
		fmt.Fprintln(out, renderer.Result(res))
	}
	fmt.Fprint(out, renderer.Summary(report))
	if flags.dryRun {
		fmt.Fprintln(out, MsgDryRunNotice)
	}
	return nil
}

// runStatus classifies every target without mutating anything.
func runStatus(cmd *cobra.Command, flags *rootFlags) error {
	p, err := paths.New()
	if err != nil {
		return err
	}

	cfg, err := config.Load(p)
	if err != nil {
		return err
	}

	sharedDir := cfg.ResolveSharedDir(p)
	targets := cfg.ResolveTargets(p)

	r := reconciler.New(filesystem.NewOS(), reconciler.Options{})
	entries := r.Status(sharedDir, targets)

	out := cmd.OutOrStdout()
	renderer := style.NewRenderer(resolveFormat(flags.format))
	fmt.Fprintf(out, "Shared directory: %s\n\n", sharedDir)
	for _, e := range entries {
		fmt.Fprintln(out, renderer.StatusEntry(e))
	}
	return nil
}

func resolveFormat(flag string) style.Format {
	f := style.ParseFormat(flag)
	if f == style.FormatAuto {
		return style.DetectFormat(os.Stdout)
	}
	return f
}
