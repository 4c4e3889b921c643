package progress

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	maxBarWidth = 30
	minBarWidth = 10
	// barOverhead is the rest of a full line: indent, brackets, percent and byte counts.
	barOverhead = len("  [] 100.0% (999.9 MB/999.9 MB)")
)

// barWidthFor sizes the download bar so the line fits a terminal of the given width.
// An unknown width (<= 0) gets the full bar.
func barWidthFor(termWidth int) int {
	if termWidth <= 0 {
		return maxBarWidth
	}
	return max(minBarWidth, min(maxBarWidth, termWidth-barOverhead-1))
}

// formatDownload renders one progress line with a bar of barWidth cells.
// An unknown total (<= 0) shows only the byte count.
func formatDownload(current, total int64, barWidth int, symbols ProgressSymbols) string {
	if total <= 0 {
		return fmt.Sprintf("  Downloaded %s", humanize.Bytes(uint64(current)))
	}
	if current > total {
		current = total
	}

	filled := int(float64(barWidth) * float64(current) / float64(total))
	bar := strings.Repeat(symbols.BarFilled, filled) + strings.Repeat(symbols.BarEmpty, barWidth-filled)
	percent := float64(current) / float64(total) * 100

	return fmt.Sprintf("  [%s] %.1f%% (%s/%s)", bar, percent,
		humanize.Bytes(uint64(current)), humanize.Bytes(uint64(total)))
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Checkmark
	if supportsColor && symbols.Checkmark == "✓" {
		mark = "\033[32m" + mark + "\033[0m" // Green
	}
	return mark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Failure
	if supportsColor && symbols.Failure == "✗" {
		mark = "\033[31m" + mark + "\033[0m" // Red
	}
	return mark
}
