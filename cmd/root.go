package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/docbump-cli/internal/changes"
	cfgpkg "github.com/KaramelBytes/docbump-cli/internal/config"
	"github.com/KaramelBytes/docbump-cli/internal/logging"
	"github.com/KaramelBytes/docbump-cli/internal/notes"
	"github.com/KaramelBytes/docbump-cli/internal/updater"
	"github.com/KaramelBytes/docbump-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Overrides (applied over config when set)
	flagDir         string
	flagBase        string
	flagSource      string
	flagChangesFile string
	flagTimeoutSec  int
	flagLogFile     string
	// Run flags
	runDryRun bool
	runReport string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "docbump",
	Short: "Append update notes to the docs related to changed API files",
	Long: `docbump finds documentation files in the repository, lists the API source files
changed against a base branch, and appends an update note to the nearest
documentation file above each changed file.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runUpdate,
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is "+cfgpkg.DefaultFileName+" in the working tree root)")
	pf.BoolVar(&debug, "debug", false, "enable debug output")
	pf.StringVar(&flagDir, "dir", "", "working tree root; may be a repository subdirectory (default: enclosing git repository, else current dir)")
	pf.StringVar(&flagBase, "base", "", "base branch to diff against (overrides config)")
	pf.StringVar(&flagSource, "source", "", "change source: "+strings.Join(changes.Names(), "|")+" (overrides config)")
	pf.StringVar(&flagChangesFile, "changes-file", "", "file with changed paths for the list source, - for stdin (overrides config)")
	pf.IntVar(&flagTimeoutSec, "timeout", 0, "diff command timeout in seconds (overrides config)")
	pf.StringVar(&flagLogFile, "log-file", "", "append timestamped log lines to this file (overrides config)")

	rootCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "report planned updates without writing")
	rootCmd.Flags().StringVar(&runReport, "report", "", "write a JSON run report to this path (overrides config)")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}
	c, err := cfgpkg.Load(cfgFile, dir)
	if err != nil {
		// config init/set may target a file that does not exist yet
		if !errors.Is(err, fs.ErrNotExist) || cmd.Parent() != configCmd {
			return err
		}
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := cmd.Flags()
	if f.Changed("base") && flagBase != "" {
		cfg.BaseBranch = flagBase
	}
	if f.Changed("source") && flagSource != "" {
		cfg.ChangeSource = flagSource
	}
	if f.Changed("changes-file") {
		cfg.ChangesFile = flagChangesFile
	}
	if f.Changed("timeout") && flagTimeoutSec > 0 {
		cfg.DiffTimeoutSec = flagTimeoutSec
	}
	if f.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if f.Changed("report") {
		cfg.ReportPath = runReport
	}
	return nil
}

// workDir resolves the tree the run operates on.
func workDir() (string, error) {
	if flagDir != "" {
		return filepath.Clean(flagDir), nil
	}
	root, err := utils.FindRepoRoot("")
	if err == nil {
		return root, nil
	}
	if errors.Is(err, utils.ErrNoRepo) {
		return ".", nil
	}
	return "", err
}

func newSource(cmd *cobra.Command, dir string) (changes.ChangeSource, error) {
	src, ok := changes.Get(cfg.ChangeSource, changes.SourceConfig{
		Dir:         dir,
		Timeout:     cfg.DiffTimeout(),
		ChangesFile: cfg.ChangesFile,
		Stdin:       cmd.InOrStdin(),
	})
	if !ok {
		return nil, fmt.Errorf("invalid change_source: %s (use %s)", cfg.ChangeSource, strings.Join(changes.Names(), " or "))
	}
	return src, nil
}

func newLogger(cmd *cobra.Command) (*logging.Logger, error) {
	log := logging.New(cmd.OutOrStdout(), debug)
	if err := log.OpenFile(cfg.LogFile); err != nil {
		return nil, err
	}
	return log, nil
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir, err := workDir()
	if err != nil {
		return err
	}
	src, err := newSource(cmd, dir)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	res, runErr := updater.Run(cmd.Context(), updater.Options{
		Config: cfg,
		Source: src,
		Dir:    dir,
		DryRun: runDryRun,
		Logger: log,
	})
	if cfg.ReportPath != "" && res != nil {
		if err := updater.WriteReport(cfg.ReportPath, res); err != nil {
			log.Warnf("%v", err)
			if runErr == nil {
				runErr = err
			}
		} else {
			log.Infof("Report written to %s", cfg.ReportPath)
		}
	}
	if runErr != nil {
		if notes.IsWriteError(runErr) {
			log.Warnf("%d of %d documentation update(s) could not be written", len(res.Failures), len(res.Failures)+len(res.Updates))
		}
		return runErr
	}

	switch {
	case runDryRun:
		log.Successf("Dry run: %d documentation update(s) planned", len(res.Updates))
	case len(res.Updates) == 0:
		log.Infof("No documentation updates needed")
	default:
		log.Successf("%d documentation update(s) applied", len(res.Updates))
	}
	return nil
}
