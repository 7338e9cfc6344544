package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

// markdownReport renders analysis lines as a markdown table
func markdownReport(lines []analysisLine) string {
	var sb strings.Builder
	sb.WriteString("# Heart check\n\n")
	sb.WriteString("| file | coverage | sectors | shape | feedback |\n")
	sb.WriteString("|------|---------:|---------|-------|----------|\n")

	complete := 0
	for _, line := range lines {
		name := filepath.Base(line.File)
		if line.DetectionResult == nil {
			fmt.Fprintf(&sb, "| %s | - | - | - | error: %s |\n", name, strings.ReplaceAll(line.Error, "|", "/"))
			continue
		}
		r := line.DetectionResult
		if r.IsComplete {
			complete++
		}
		shape := "invalid"
		if r.IsValidShape {
			shape = "valid"
		}
		fmt.Fprintf(&sb, "| %s | %.0f%% | %s | %s | %s |\n",
			name, r.CoveragePercentage, sectorMap(r.CoveredSectors), shape, r.Feedback)
	}
	fmt.Fprintf(&sb, "\n**%d of %d** drawings are complete hearts.\n", complete, len(lines))
	return sb.String()
}

// sectorMap draws the twelve sectors as filled and empty marks
func sectorMap(sectors [types.NumSectors]bool) string {
	var sb strings.Builder
	for _, covered := range sectors {
		if covered {
			sb.WriteString("●")
		} else {
			sb.WriteString("○")
		}
	}
	return sb.String()
}

// renderMarkdown styles markdown for the terminal with a glamour style name
// such as pink, dark, light, or ascii
func renderMarkdown(md, style string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
