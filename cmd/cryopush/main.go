package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cryopush/internal/commands"
	"cryopush/internal/ui"
)

// VERSION is set during build via ldflags
var VERSION string

// getCurrentVersion retrieves the current version from build flags or version.txt
func getCurrentVersion() string {
	version := VERSION
	if version == "" {
		// Read version from version.txt if VERSION is not set
		if versionData, err := os.ReadFile("version.txt"); err == nil {
			version = strings.TrimSpace(string(versionData))
		}
	}
	return version
}

func main() {
	// Set version function for commands package
	commands.GetCurrentVersion = getCurrentVersion

	// create root command
	rootCmd := &cobra.Command{
		Use:                "cryopush",
		Short:              "Cryostat Log Exporter",
		DisableSuggestions: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			// check if --version flag is set
			if cmd.Flags().Lookup("version").Changed {
				fmt.Printf("v%s\n", getCurrentVersion())
				return nil
			}

			ui.PrintHeader()

			ui.PrintSection("Core Features")
			featuresData := map[string]string{
				"Log Collection":  "Latest readings from every sensor file",
				"Metric Catalog":  "Stable names, units and descriptions",
				"Pushgateway":     "Prometheus push with heartbeat",
				"OTLP Export":     "Optional OpenTelemetry transport",
				"Fault Isolation": "One bad file never loses the cycle",
			}
			fmt.Print(ui.CreateBeautifulList(featuresData))
			ui.PrintSectionEnd()

			ui.PrintSection("Quick Start")
			quickStartData := map[string]string{
				"Dry Run":      "cryopush collect",
				"Push Cycle":   "cryopush push",
				"Last Outcome": "cryopush status",
				"Folder Audit": "cryopush report",
				"Configure":    "~/.cryopush/config.yaml",
			}
			fmt.Print(ui.CreateBeautifulList(quickStartData))
			ui.PrintSectionEnd()

			ui.PrintSection("Commands")
			commandsData := map[string]string{
				"push":    "Collect today's readings and push them",
				"collect": "Collect and print without pushing",
				"report":  "Survey a dated log folder",
				"catalog": "List every known metric",
				"status":  "Show the last cycle outcome",
			}
			fmt.Print(ui.CreateBeautifulList(commandsData))
			ui.PrintSectionEnd()

			ui.PrintStatus("info", "Use 'cryopush [command] --help' for detailed help")
			return nil
		},
	}

	// add version flag
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	// Create all commands using commands package
	pushCmd := commands.NewPushCmd()
	collectCmd := commands.NewCollectCmd()
	reportCmd := commands.NewReportCmd()
	catalogCmd := commands.NewCatalogCmd()
	statusCmd := commands.NewStatusCmd()

	// add commands to root
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(statusCmd)

	// execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
