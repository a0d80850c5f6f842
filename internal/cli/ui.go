package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pandiff/pkg/pipeline"
)

// uiOut receives status lines and tables. It is stderr so that documents
// written to stdout are not interleaved with them.
var uiOut io.Writer = os.Stderr

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, added blocks
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, removed blocks
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleAdded for added blocks.
	StyleAdded = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleRemoved for removed blocks.
	StyleRemoved = lipgloss.NewStyle().Foreground(colorRed)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconError.Render(iconError)+" "+msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Diff Summary
// =============================================================================

// printDiffLine prints the block counts of a diff on a single line.
func printDiffLine(res *pipeline.Result) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d unchanged", res.Summary.Unchanged)),
		StyleAdded.Render(fmt.Sprintf("+%d", res.Summary.Added)),
		StyleRemoved.Render(fmt.Sprintf("-%d", res.Summary.Removed)),
	}

	status, style := iconFresh, styleComputed
	if res.CacheInfo.DiffHit {
		status, style = iconCached, styleCached
	}
	parts = append(parts, style.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += part
	}
	fmt.Fprintln(uiOut, line)
}

// renderStats renders the block counts and stage timings of a run as a
// table.
func renderStats(res *pipeline.Result) string {
	rows := [][]string{
		{"before", strconv.Itoa(res.Stats.BeforeBlocks) + " blocks"},
		{"after", strconv.Itoa(res.Stats.AfterBlocks) + " blocks"},
		{"unchanged", strconv.Itoa(res.Summary.Unchanged)},
		{"added", strconv.Itoa(res.Summary.Added)},
		{"removed", strconv.Itoa(res.Summary.Removed)},
		{"changed", strconv.Itoa(res.Summary.Changed) + " pairs"},
	}
	if res.Decorated.Added+res.Decorated.Removed > 0 {
		rows = append(rows, []string{"decorated", fmt.Sprintf("+%d -%d", res.Decorated.Added, res.Decorated.Removed)})
	}
	rows = append(rows,
		[]string{"load", formatDuration(res.Stats.LoadTime)},
		[]string{"diff", formatDuration(res.Stats.DiffTime) + cacheNote(res.CacheInfo.DiffHit)},
		[]string{"decorate", formatDuration(res.Stats.DecorateTime)},
		[]string{"write", formatDuration(res.Stats.WriteTime)},
		[]string{"total", formatDuration(res.Stats.Total())},
	)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Stat", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col == 1 && row < len(rows) {
				switch rows[row][0] {
				case "added":
					return styleTableCell.Foreground(colorGreen)
				case "removed":
					return styleTableCell.Foreground(colorRed)
				}
				return styleTableCell.Foreground(colorWhite)
			}
			return styleTableCell.Foreground(colorGray)
		}).
		Render()
}

func cacheNote(hit bool) string {
	if hit {
		return " (" + iconCached + ")"
	}
	return ""
}

func formatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "-"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}
