package updater

import (
	"fmt"

	"github.com/KaramelBytes/docbump-cli/internal/utils"
)

// WriteReport saves the run result as indented JSON at path.
func WriteReport(path string, res *Result) error {
	if res == nil {
		return fmt.Errorf("no result to report")
	}
	data, err := utils.PrettyJSON(res)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
