package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/charsnap/charsnap/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderDiff renders a SnapshotDiff as a styled report.
func RenderDiff(diff *domain.SnapshotDiff) string {
	var b strings.Builder

	var status string
	switch {
	case diff.IsEmpty():
		status = passStyle.Bold(true).Render("no drift")
	case diff.HasResultDrift():
		status = failStyle.Bold(true).Render("results drifted")
	default:
		status = warnStyle.Bold(true).Render("environment changed")
	}
	summary := dimStyle.Render(fmt.Sprintf("%d unchanged · %d changed · %d added · %d removed",
		diff.Unchanged, len(diff.Changed), len(diff.Added), len(diff.Removed)))

	b.WriteString(boxStyle.Render(titleStyle.Render("Snapshot Diff") + "  " + status + "\n" + summary))
	b.WriteString("\n")

	if len(diff.Metadata) > 0 {
		renderSectionHeader(&b, "Environment", len(diff.Metadata))
		for _, m := range diff.Metadata {
			b.WriteString(fmt.Sprintf("    %s %s  %s → %s\n",
				warnStyle.Render("●"), m.Field, dimStyle.Render(orNull(m.Base)), orNull(m.Head)))
		}
	}

	if len(diff.Changed) > 0 {
		renderSectionHeader(&b, "Changed", len(diff.Changed))
		for _, c := range diff.Changed {
			b.WriteString(fmt.Sprintf("    %s %s\n", failStyle.Render("●"), c.Path))
			b.WriteString(fmt.Sprintf("      %s → %s\n",
				dimStyle.Render(describe(c.Base)), describe(c.Head)))
		}
	}

	renderPathSection(&b, "Added", diff.Added, passStyle)
	renderPathSection(&b, "Removed", diff.Removed, failStyle)

	if diff.HasResultDrift() {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Re-run charsnap snapshot to accept the new results."))
		b.WriteString("\n")
	}

	return b.String()
}

func renderSectionHeader(b *strings.Builder, title string, n int) {
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", n)),
	))
}

func renderPathSection(b *strings.Builder, title string, paths []string, style lipgloss.Style) {
	if len(paths) == 0 {
		return
	}
	renderSectionHeader(b, title, len(paths))
	for _, p := range paths {
		b.WriteString(fmt.Sprintf("    %s %s\n", style.Render("●"), p))
	}
}

func describe(r domain.DetectionResult) string {
	s := fmt.Sprintf("%s %.2f", orNull(r.EncodingLabel()), r.Confidence)
	if lang := r.LanguageLabel(); lang != "" {
		s += " " + lang
	}
	return s
}

func orNull(s string) string {
	if s == "" {
		return nullLabel
	}
	return s
}
