package cmd

import (
	"fmt"

	"github.com/KaramelBytes/docbump-cli/internal/changes"
	"github.com/KaramelBytes/docbump-cli/internal/docs"
	"github.com/spf13/cobra"
)

var (
	changesAll     bool
	changesRelated bool
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "List API files changed against the base branch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := workDir()
		if err != nil {
			return err
		}
		src, err := newSource(cmd, dir)
		if err != nil {
			return err
		}
		var files []string
		if changesAll {
			files, err = src.ChangedFiles(cmd.Context(), cfg.BaseBranch)
		} else {
			files, err = changes.Detect(cmd.Context(), src, cfg.BaseBranch, cfg.APISourceDirs)
		}
		if err != nil {
			return err
		}

		var docList []string
		if changesRelated {
			if docList, err = docs.Find(dir, cfg.DocFilePatterns); err != nil {
				return err
			}
		}
		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "(no changed files)")
			return nil
		}
		for _, f := range files {
			if !changesRelated {
				fmt.Fprintf(out, "- %s\n", f)
				continue
			}
			if doc, ok := docs.FindRelated(f, docList); ok {
				fmt.Fprintf(out, "- %s -> %s\n", f, doc)
			} else {
				fmt.Fprintf(out, "- %s (no related doc)\n", f)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
	changesCmd.Flags().BoolVar(&changesAll, "all", false, "list every changed file, not only those under api_source_dirs")
	changesCmd.Flags().BoolVar(&changesRelated, "related", false, "show the documentation file each change maps to")
}
