package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	memberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// section is one member of a listing: its header line and its code.
type section struct {
	title string
	body  []string
}

// splitMembers cuts a Printer listing into one section per member. Lines
// before the first member form a header section.
func splitMembers(listing string) []section {
	var out []section
	for _, line := range strings.Split(strings.TrimRight(listing, "\n"), "\n") {
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "field "), strings.HasPrefix(line, "method "), len(out) == 0:
			out = append(out, section{title: line})
		default:
			s := &out[len(out)-1]
			s.body = append(s.body, strings.TrimSpace(line))
		}
	}
	return out
}

type browseModel struct {
	title    string
	sections []section
	view     viewport.Model
	selected int
	ready    bool
}

func newBrowseModel(title, listing string) *browseModel {
	return &browseModel{title: title, sections: splitMembers(listing)}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-len(m.sections)-6, 3)
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.sections)-1 {
				m.selected++
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *browseModel) refresh() {
	if !m.ready || len(m.sections) == 0 {
		return
	}
	s := m.sections[m.selected]
	if len(s.body) == 0 {
		m.view.SetContent(helpStyle.Render("(no code)"))
	} else {
		m.view.SetContent(codeStyle.Render(strings.Join(s.body, "\n")))
	}
	m.view.GotoTop()
}

func (m *browseModel) View() string {
	if len(m.sections) == 0 {
		return errorStyle.Render("Nothing to browse.\n\nPress q to quit.")
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("classgen"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("\n\n")

	for i, s := range m.sections {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + s.title))
		} else {
			b.WriteString("  " + memberStyle.Render(s.title))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ select • pgup/pgdn scroll • q quit • %d%%", int(m.view.ScrollPercent()*100))))
	return b.String()
}

func runBrowse(title, listing string) error {
	p := tea.NewProgram(newBrowseModel(title, listing), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
