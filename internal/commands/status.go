package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cryopush/internal/config"
	"cryopush/internal/process"
	"cryopush/internal/state"
	"cryopush/internal/ui"
)

// NewStatusCmd creates the status command showing the last cycle outcome
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the outcome of the most recent collection cycle",
		Run: func(cmd *cobra.Command, args []string) {
			if running, pid, err := process.Check(); err == nil && running {
				if process.IsCryopushProcess(pid) {
					ui.PrintStatus("info", fmt.Sprintf("A collection cycle is running right now (PID %d)", pid))
				} else {
					ui.PrintStatus("warning", fmt.Sprintf("Cycle lock held by PID %d, which is not a cryopush process", pid))
				}
			}

			run, err := state.Load(config.StatePath())
			if err != nil {
				ui.PrintStatus("info", "No previous run recorded")
				return
			}

			ui.PrintSection("Last Run")
			version := "unknown"
			if GetCurrentVersion != nil {
				if v := GetCurrentVersion(); v != "" {
					version = v
				}
			}
			info := map[string]string{
				"Version":   version,
				"When":      fmt.Sprintf("%s (%s ago)", run.Timestamp.Format("2006-01-02 15:04:05"), time.Since(run.Timestamp).Round(time.Second)),
				"Samples":   fmt.Sprintf("%d", run.SampleCount),
				"Transport": run.Transport,
				"Pushed":    fmt.Sprintf("%t", run.Pushed),
			}
			fmt.Print(ui.CreateBeautifulList(info))
			ui.PrintSectionEnd()

			if len(run.Failures) > 0 {
				ui.PrintSection(fmt.Sprintf("Skipped files (%d)", len(run.Failures)))
				for _, f := range run.Failures {
					ui.PrintStatus("warning", fmt.Sprintf("%s: %s (%s)", f.File, f.Kind, f.Message))
				}
				ui.PrintSectionEnd()
			}
		},
	}
}
