package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// Stat is one labelled count in a summary.
type Stat struct {
	Label string
	Value int
}

// Summary renders a boxed run summary. Each warning gets its own line below
// the counts.
func Summary(w io.Writer, title string, stats []Stat, warnings []string) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, s := range stats {
		fmt.Fprintf(&b, "\n%s %d", dimStyle.Render(s.Label+":"), s.Value)
	}

	status := successStyle.Render("OK")
	if len(warnings) > 0 {
		status = warnStyle.Render(fmt.Sprintf("%d skipped", len(warnings)))
	}
	fmt.Fprintf(&b, "\n%s %s", dimStyle.Render("Status:"), status)

	for _, warning := range warnings {
		fmt.Fprintf(&b, "\n%s %s", warnStyle.Render("!"), warning)
	}

	fmt.Fprintln(w, boxStyle.Render(b.String()))
}
