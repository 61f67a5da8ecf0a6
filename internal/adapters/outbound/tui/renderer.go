package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/charsnap/charsnap/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	infoStyle     = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// nullLabel stands in for a missing encoding or language.
const nullLabel = "(none)"

// RenderSummary formats a finished run for the terminal: environment box,
// then the encoding histogram.
func RenderSummary(snap *domain.Snapshot, outputPath string) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("charsnap")
	subtitle := dimStyle.Render("Encoding Snapshot")
	count := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Render(fmt.Sprintf("%d files", len(snap.Results)))
	env := dimStyle.Render(fmt.Sprintf("go %s · detector %s",
		snap.Metadata.RuntimeVersion, snap.Metadata.DetectorVersion))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + count + "\n" + env))
	b.WriteString("\n\n")

	// ── Histogram ──
	hist := snap.EncodingHistogram()
	if len(hist) == 0 {
		b.WriteString("  " + dimStyle.Render("Corpus is empty.") + "\n")
	} else {
		b.WriteString("  " + titleStyle.Render("Encodings") + "\n\n")
		total := len(snap.Results)
		for _, h := range hist {
			label := h.Encoding
			if label == "" {
				label = nullLabel
			}
			b.WriteString(fmt.Sprintf("  %s %s  %s\n",
				labelStyle.Render(padRight(label, 16)),
				coloredBar(h.Files*100/total, 30),
				dimStyle.Render(fmt.Sprintf("%d", h.Files)),
			))
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")
	if outputPath != "" {
		b.WriteString("  " + dimStyle.Render("written to ") + outputPath + "\n")
	}
	if rev := snap.Metadata.CorpusRevision; rev != "" {
		b.WriteString("  " + dimStyle.Render("corpus at ") + faintStyle.Render(shortHash(rev)) + "\n")
	}

	return b.String()
}

// RenderDetection formats detection candidates for a single file, most
// confident first.
func RenderDetection(path string, results []domain.DetectionResult) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(path) + "\n\n")

	if len(results) == 0 {
		b.WriteString("  " + warnStyle.Render("no encoding detected") + "\n")
		return b.String()
	}

	for _, r := range results {
		enc := r.EncodingLabel()
		if enc == "" {
			enc = nullLabel
		}
		lang := r.LanguageLabel()
		if lang == "" {
			lang = "-"
		}
		pct := int(r.Confidence*100 + 0.5)
		b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
			labelStyle.Render(padRight(enc, 16)),
			coloredBar(pct, 20),
			confidenceStyle(pct).Render(fmt.Sprintf("%.2f", r.Confidence)),
			infoStyle.Render(lang),
		))
	}
	return b.String()
}

// RenderHistory formats the run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.CorpusRevision)
		if hash == "" {
			hash = "·······"
		}

		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			padRight(fmt.Sprintf("%d files", e.Files), 10),
			dimStyle.Render("go "+e.RuntimeVersion),
			faintStyle.Render(shortHash(e.Digest)),
		)

		if i > 0 && e.Digest != entries[i-1].Digest {
			line += "  " + warnStyle.Render("changed")
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func coloredBar(pct, width int) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func confidenceStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 80:
		return passStyle
	case pct >= 40:
		return warnStyle
	default:
		return failStyle
	}
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
