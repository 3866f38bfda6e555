package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkessler/aurq/pkg/aur"
)

// Color palette.
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleName    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray)
	styleFlagged = lipgloss.NewStyle().Foreground(colorRed)
	styleOrphan  = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// renderPackages writes one line per package: name, version, votes, and the
// out-of-date marker, with the description dimmed underneath.
func renderPackages(w io.Writer, pkgs []aur.Package) {
	for _, p := range pkgs {
		line := styleName.Render(p.Name) + " " + styleVersion.Render(p.Version)
		line += styleDim.Render(fmt.Sprintf(" (%d votes)", p.Votes))
		if p.OutOfDate {
			line += " " + styleFlagged.Render("[out of date]")
		}
		if p.Maintainer == nil {
			line += " " + styleOrphan.Render("[orphan]")
		}
		fmt.Fprintln(w, line)
		if p.Description != "" {
			fmt.Fprintln(w, "    "+styleDim.Render(p.Description))
		}
	}
}

// renderPackage writes a detail view of a single package.
func renderPackage(w io.Writer, p *aur.Package) {
	fmt.Fprintln(w, styleName.Render(p.Name)+" "+styleVersion.Render(p.Version))
	fmt.Fprintln(w)

	field(w, "Description", styleValue.Render(p.Description))
	field(w, "Base", fmt.Sprintf("%s (id %d)", p.BaseName, p.BaseID))
	if p.Homepage != "" {
		field(w, "Upstream", styleLink.Render(p.Homepage))
	}
	field(w, "License", orNone(p.License))
	field(w, "Maintainer", orNone(p.Maintainer))
	field(w, "Votes", fmt.Sprintf("%d", p.Votes))
	field(w, "First submitted", formatTime(p.Created))
	field(w, "Last modified", formatTime(p.Modified))
	if p.OutOfDate {
		field(w, "Status", styleFlagged.Render("flagged out of date"))
	}
	field(w, "Download", p.Download)
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", styleLabel.Render(fmt.Sprintf("%-16s", label+":")), value)
}

func orNone(s *string) string {
	if s == nil {
		return styleDim.Render("none")
	}
	return *s
}

// formatTime renders an absolute timestamp with a relative suffix,
// e.g. "2021-01-01 00:00 UTC (3 years ago)".
func formatTime(t time.Time) string {
	return fmt.Sprintf("%s %s", t.Format("2006-01-02 15:04 MST"), styleDim.Render("("+relativeTime(t)+")"))
}

func relativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
