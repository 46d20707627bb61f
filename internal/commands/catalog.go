package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cryopush/internal/catalog"
	"cryopush/internal/ui"
)

// NewCatalogCmd creates the catalog command listing every known metric
func NewCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every known metric with its description and unit",
		Run: func(cmd *cobra.Command, args []string) {
			entries := catalog.Entries()

			ui.PrintSection(fmt.Sprintf("Metric catalog (%d entries)", len(entries)))
			rows := make([][3]string, 0, len(entries))
			for _, e := range entries {
				note := e.Group
				if e.DisplayUnit != "" {
					note = fmt.Sprintf("%s, %s", e.Group, e.DisplayUnit)
				}
				rows = append(rows, [3]string{e.MetricName, e.Description, note})
			}
			fmt.Print(ui.CreateAlignedTable(rows))
			ui.PrintSectionEnd()
		},
	}
}
