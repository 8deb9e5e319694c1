package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/docbump-cli/internal/apidiff"
	"github.com/KaramelBytes/docbump-cli/internal/changes"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Show API element changes of a file against the base branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := filepath.ToSlash(filepath.Clean(args[0]))
		dir, err := workDir()
		if err != nil {
			return err
		}
		src, err := newSource(cmd, dir)
		if err != nil {
			return err
		}
		cs, ok := src.(changes.ContentSource)
		if !ok {
			return fmt.Errorf("change source %q cannot read base revisions; use --source git", cfg.ChangeSource)
		}

		out := cmd.OutOrStdout()
		current, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(file)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(out, "%s no longer exists\n", file)
				return nil
			}
			return fmt.Errorf("read %s: %w", file, err)
		}
		rev, err := cs.MergeBase(cmd.Context(), cfg.BaseBranch)
		if err != nil {
			return fmt.Errorf("resolve merge base of %s: %w", cfg.BaseBranch, err)
		}
		old, showErr := cs.Show(cmd.Context(), rev, file)
		if showErr != nil {
			if !errors.Is(showErr, changes.ErrNotAtRevision) {
				return showErr
			}
			fmt.Fprintf(out, "No version of %s on %s, treating as new file\n", file, cfg.BaseBranch)
		}

		if !apidiff.Supported(file) {
			fmt.Fprintf(out, "⚠ Warning: no API extractor for %s; reporting line changes only\n", file)
		}
		details, err := apidiff.Summarize(file, old, showErr == nil, current)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", file, err)
		}
		if len(details) == 0 {
			fmt.Fprintln(out, "No API changes detected")
			return nil
		}
		fmt.Fprintf(out, "Changes in %s since %s:\n", file, cfg.BaseBranch)
		for _, d := range details {
			fmt.Fprintf(out, "- %s\n", d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
