package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/docbump-cli/internal/changes"
	cfgpkg "github.com/KaramelBytes/docbump-cli/internal/config"
	"github.com/spf13/cobra"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set docbump configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "api_source_dirs: %s\n", strings.Join(cfg.APISourceDirs, ", "))
		fmt.Fprintf(out, "doc_file_patterns: %s\n", strings.Join(cfg.DocFilePatterns, ", "))
		fmt.Fprintf(out, "base_branch: %s\n", cfg.BaseBranch)
		fmt.Fprintf(out, "change_source: %s\n", cfg.ChangeSource)
		if cfg.ChangesFile != "" {
			fmt.Fprintf(out, "changes_file: %s\n", cfg.ChangesFile)
		}
		fmt.Fprintf(out, "diff_timeout_sec: %d\n", cfg.DiffTimeoutSec)
		fmt.Fprintf(out, "duplicate_policy: %s\n", cfg.DuplicatePolicy)
		fmt.Fprintf(out, "note_style: %s\n", cfg.NoteStyle)
		if cfg.LogFile != "" {
			fmt.Fprintf(out, "log_file: %s\n", cfg.LogFile)
		}
		if cfg.ReportPath != "" {
			fmt.Fprintf(out, "report_path: %s\n", cfg.ReportPath)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to " + cfgpkg.DefaultFileName,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := cfgpkg.Save(cfgpkg.Defaults(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config written: %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Set a config value and save to disk. List keys take a comma-separated value.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		switch key {
		case "api_source_dirs":
			cfg.APISourceDirs = splitList(val)
		case "doc_file_patterns":
			cfg.DocFilePatterns = splitList(val)
		case "base_branch":
			cfg.BaseBranch = val
		case "change_source":
			if _, ok := changes.Get(val, changes.SourceConfig{}); !ok {
				return fmt.Errorf("invalid change_source: %s (use %s)", val, strings.Join(changes.Names(), " or "))
			}
			cfg.ChangeSource = val
		case "changes_file":
			cfg.ChangesFile = val
		case "diff_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for diff_timeout_sec: %v", val)
			}
			cfg.DiffTimeoutSec = i
		case "duplicate_policy":
			cfg.DuplicatePolicy = strings.ToLower(val)
		case "note_style":
			cfg.NoteStyle = strings.ToLower(val)
		case "log_file":
			cfg.LogFile = val
		case "report_path":
			cfg.ReportPath = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, configPath()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
}

// configPath is the file config init/set write: --config, else the default
// file in the working tree root, where Load looks for it.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	dir, err := workDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, cfgpkg.DefaultFileName)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
