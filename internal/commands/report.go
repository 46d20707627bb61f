package commands

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	constants "cryopush/config"
	"cryopush/internal/config"
	"cryopush/internal/logger"
	"cryopush/internal/report"
	"cryopush/internal/ui"
)

// NewReportCmd creates the report command. The report is written to the
// config directory, never into the logs tree.
func NewReportCmd() *cobra.Command {
	var dateFlag string
	var upload bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Survey a dated log folder (size, first and last line per file)",
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
			dateDir := filepath.Join(cfg.LogsDir, day.Format(constants.DATE_FOLDER_LAYOUT))

			ui.PrintStatus("info", fmt.Sprintf("Surveying %s", dateDir))
			content, err := report.Build(dateDir)
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Report failed: %v", err))
				logger.Error("Report failed for %s: %v", dateDir, err)
				os.Exit(1)
			}

			os.MkdirAll(config.Dir(), 0755)
			outPath := filepath.Join(config.Dir(), constants.REPORT_FILE_NAME)
			if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Cannot save report: %v", err))
				os.Exit(1)
			}
			ui.PrintStatus("success", fmt.Sprintf("Report saved to %s", outPath))

			if upload {
				client := &http.Client{Timeout: 30 * time.Second}
				shareURL, err := report.Upload(client, content)
				if err != nil {
					ui.PrintStatus("error", fmt.Sprintf("Upload failed: %v", err))
					logger.Error("Report upload failed: %v", err)
					os.Exit(1)
				}
				ui.PrintStatus("success", fmt.Sprintf("Report uploaded: %s", shareURL))
			}
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Dated folder to survey (YY-MM-DD, default today)")
	cmd.Flags().BoolVar(&upload, "upload", false, "Upload the report to the paste service")
	return cmd
}
