package cmd

import (
	"fmt"

	"github.com/KaramelBytes/docbump-cli/internal/docs"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List documentation files matched by doc_file_patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := workDir()
		if err != nil {
			return err
		}
		files, err := docs.Find(dir, cfg.DocFilePatterns)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "(no documentation files)")
			return nil
		}
		for _, f := range files {
			fmt.Fprintf(out, "- %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
