package ui

import (
	"fmt"
	"sort"
	"strings"
)

// PrintHeader prints the application header
func PrintHeader() {
	fmt.Println(PrimaryStyle.Render(" ██████╗██████╗ ██╗   ██╗ ██████╗ "))
	fmt.Println(PrimaryStyle.Render("██╔════╝██╔══██╗╚██╗ ██╔╝██╔═══██╗"))
	fmt.Println(PrimaryStyle.Render("██║     ██████╔╝ ╚████╔╝ ██║   ██║"))
	fmt.Println(PrimaryStyle.Render("██║     ██╔══██╗  ╚██╔╝  ██║   ██║"))
	fmt.Println(PrimaryStyle.Render("╚██████╗██║  ██║   ██║   ╚██████╔╝"))
	fmt.Println(PrimaryStyle.Render(" ╚═════╝╚═╝  ╚═╝   ╚═╝    ╚═════╝ "))
	fmt.Println(BoldStyle.Render("        Cryostat Log Exporter"))
}

// PrintSection prints a section header
func PrintSection(title string) {
	titleWidth := len(title) + 4
	totalWidth := 60
	dashCount := totalWidth - titleWidth
	if dashCount < 0 {
		dashCount = 0
	}
	fmt.Printf("%s %s %s\n",
		PrimaryStyle.Render("┌─"),
		WhiteStyle.Render(title),
		PrimaryStyle.Render("─"+strings.Repeat("─", dashCount)+"┐"))
}

// PrintSectionEnd prints a section footer
func PrintSectionEnd() {
	fmt.Println(PrimaryStyle.Render("└" + strings.Repeat("─", 60) + "┘"))
}

// PrintStatus prints a status message
func PrintStatus(status, message string) {
	switch status {
	case "success":
		fmt.Printf("  %s %s\n", SuccessStyle.Render("✓"), WhiteStyle.Render(message))
	case "warning":
		fmt.Printf("  %s %s\n", WarningStyle.Render("⚠"), WhiteStyle.Render(message))
	case "error":
		fmt.Printf("  %s %s\n", ErrorStyle.Render("✗"), WhiteStyle.Render(message))
	case "info":
		fmt.Printf("  %s %s\n", InfoStyle.Render("ℹ"), WhiteStyle.Render(message))
	}
}

// CreateBeautifulList renders key/value pairs as a sorted bullet list
func CreateBeautifulList(data map[string]string) string {
	var result strings.Builder

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		result.WriteString("  ")
		result.WriteString(PrimaryStyle.Render("•"))
		result.WriteString(" ")
		result.WriteString(WhiteStyle.Render(key))
		result.WriteString(MutedStyle.Render(": "))
		result.WriteString(GrayStyle.Render(data[key]))
		result.WriteString("\n")
	}

	return result.String()
}

// CreateAlignedTable renders rows of (name, value, note) with padded columns
func CreateAlignedTable(rows [][3]string) string {
	var result strings.Builder

	maxName, maxValue := 0, 0
	for _, row := range rows {
		if len(row[0]) > maxName {
			maxName = len(row[0])
		}
		if len(row[1]) > maxValue {
			maxValue = len(row[1])
		}
	}

	for _, row := range rows {
		name := row[0] + strings.Repeat(" ", maxName-len(row[0]))
		value := row[1] + strings.Repeat(" ", maxValue-len(row[1]))
		result.WriteString("  ")
		result.WriteString(WhiteStyle.Render(name))
		result.WriteString("  ")
		result.WriteString(AccentStyle.Render(value))
		if row[2] != "" {
			result.WriteString("  ")
			result.WriteString(GrayStyle.Render(row[2]))
		}
		result.WriteString("\n")
	}

	return result.String()
}
