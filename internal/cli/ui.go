package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("35")  // success
	colorDim   = lipgloss.Color("240") // muted text
	colorWhite = lipgloss.Color("255") // values
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// Status lines go to stderr so that results on stdout stay pipeable.

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printCounts summarizes a lookup on one line.
func printCounts(w io.Writer, direct, transitive int) {
	line := fmt.Sprintf("%d direct", direct)
	if transitive > 0 {
		line += styleDim.Render(" · ") + fmt.Sprintf("%d transitive", transitive)
	}
	fmt.Fprintln(w, "  "+styleDim.Render(line))
}
