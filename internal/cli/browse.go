package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkessler/aurq/pkg/aur"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// packageListModel is the bubbletea model for browsing search results.
// Enter selects a package for the detail view; q quits without selecting.
type packageListModel struct {
	pkgs     []aur.Package
	cursor   int
	selected *aur.Package
	height   int
	offset   int
}

func newPackageListModel(pkgs []aur.Package) packageListModel {
	return packageListModel{pkgs: pkgs, height: 15}
}

func (m packageListModel) Init() tea.Cmd {
	return nil
}

func (m packageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.pkgs)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = &m.pkgs[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m packageListModel) View() string {
	var b strings.Builder

	b.WriteString(styleName.Render(fmt.Sprintf("%d packages", len(m.pkgs))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.pkgs) {
		end = len(m.pkgs)
	}

	for i := m.offset; i < end; i++ {
		p := m.pkgs[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := style.Render(p.Name) + " " + styleVersion.Render(p.Version)
		line += listDimStyle.Render(fmt.Sprintf("  %d votes", p.Votes))
		if p.OutOfDate {
			line += " " + styleFlagged.Render("[out of date]")
		}
		b.WriteString(cursor + line + "\n")
		if i == m.cursor && p.Description != "" {
			b.WriteString("    " + listDimStyle.Render(truncate(p.Description, 76)) + "\n")
		}
	}

	return b.String()
}

// browsePackages opens the interactive results browser and, when a package
// is selected, prints its detail view after the program exits.
func browsePackages(pkgs []aur.Package) error {
	prog := tea.NewProgram(newPackageListModel(pkgs))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("interactive browser failed: %w", err)
	}
	if m, ok := final.(packageListModel); ok && m.selected != nil {
		renderPackage(os.Stdout, m.selected)
	}
	return nil
}
