package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"cryopush/internal/catalog"
	"cryopush/internal/collector"
	"cryopush/internal/config"
	"cryopush/internal/ui"
	"cryopush/pkg/utils"
)

// NewCollectCmd creates the collect command: a dry run that prints what a
// push cycle would send without touching any backend.
func NewCollectCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect today's readings and print them without pushing",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				os.Exit(1)
			}
			if cfg.LogsDir == "" {
				ui.PrintStatus("error", "logs_dir is missing or empty")
				os.Exit(1)
			}

			day, err := resolveDay(dateFlag)
			if err != nil {
				ui.PrintStatus("error", err.Error())
				os.Exit(1)
			}

			result, err := collector.Collect(cfg.LogsDir, day)
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Collection failed: %v", err))
				os.Exit(1)
			}

			ui.PrintSection(fmt.Sprintf("Samples (%d)", len(result.Samples)))

			names := make([]string, 0, len(result.Samples))
			for name := range result.Samples {
				names = append(names, name)
			}
			sort.Strings(names)

			rows := make([][3]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, [3]string{
					name,
					utils.FormatValue(result.Samples[name]),
					catalog.GroupOf(name),
				})
			}
			fmt.Print(ui.CreateAlignedTable(rows))
			ui.PrintSectionEnd()

			if len(result.FileErrors) > 0 {
				ui.PrintSection(fmt.Sprintf("Skipped files (%d)", len(result.FileErrors)))
				for _, fe := range result.FileErrors {
					ui.PrintStatus("warning", fmt.Sprintf("%s: %s", fe.File, fe.Kind))
				}
				ui.PrintSectionEnd()
			}
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Dated folder to collect (YY-MM-DD, default today)")
	return cmd
}
