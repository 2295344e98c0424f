package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// palette matches the colours used across docsplice output.
var palette = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}{
	Primary: lipgloss.Color("#7C3AED"),
	Muted:   lipgloss.Color("#6C7086"),
	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"),
	Error:   lipgloss.Color("#F38BA8"),
}

// styles holds the lipgloss styles for one command's output.
type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// newStyles returns coloured styles when w is a terminal and colour is
// not disabled, and plain styles otherwise.
func newStyles(w io.Writer) styles {
	if noColor || !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{Title: plain, Muted: plain, Success: plain, Warning: plain, Error: plain}
	}
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(palette.Primary),
		Muted:   lipgloss.NewStyle().Foreground(palette.Muted),
		Success: lipgloss.NewStyle().Foreground(palette.Success),
		Warning: lipgloss.NewStyle().Foreground(palette.Warning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(palette.Error),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputStatus renders a generate status marker.
func (s styles) outputStatus(status domain.OutputStatus) string {
	label := fmt.Sprintf("%-9s", status)
	switch status {
	case domain.OutputWritten:
		return s.Success.Render(label)
	case domain.OutputPlanned:
		return s.Warning.Render(label)
	default:
		return s.Muted.Render(label)
	}
}

// checkStatus renders a check status marker.
func (s styles) checkStatus(status domain.CheckStatus) string {
	label := fmt.Sprintf("%-9s", status)
	switch status {
	case domain.CheckOK:
		return s.Success.Render(label)
	case domain.CheckStale, domain.CheckMissing:
		return s.Warning.Render(label)
	default:
		return s.Error.Render(label)
	}
}
