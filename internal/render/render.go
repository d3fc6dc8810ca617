// Package render prints analysis results for the terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"profile-roast/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Width(80)
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Analysis writes a, boxed and colored when styled is set.
func Analysis(w io.Writer, a models.Analysis, styled bool) error {
	if !styled {
		_, err := fmt.Fprintf(w, "@%s\n%s\n\n%s\n", a.Profile.Username, plainSummary(a), strings.TrimSpace(a.Commentary))
		return err
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("@"+a.Profile.Username),
		labelStyle.Render(plainSummary(a)),
		"",
		strings.TrimSpace(a.Commentary),
	)
	_, err := fmt.Fprintln(w, boxStyle.Render(body))
	return err
}

func plainSummary(a models.Analysis) string {
	s := fmt.Sprintf("%d posts analyzed", len(a.Profile.Tweets))
	if a.Degraded {
		s += " (analysis unavailable)"
	}
	return s
}
