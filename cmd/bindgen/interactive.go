package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pixll/wasm-bridge/bindgen"
	"github.com/pixll/wasm-bridge/webidl"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	ifaceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateSelectIface browserState = iota
	statePreview
)

type browserModel struct {
	err      error
	filename string
	schema   *webidl.Schema
	surface  *bindgen.Surface
	filter   textinput.Model
	visible  []int
	selected int
	preview  string
	state    browserState
}

type schemaLoadedMsg struct {
	err     error
	schema  *webidl.Schema
	surface *bindgen.Surface
}

func newBrowserModel(filename string) *browserModel {
	filter := textinput.New()
	filter.Placeholder = "filter interfaces"
	filter.Prompt = "/ "
	filter.Width = 40

	return &browserModel{
		filename: filename,
		filter:   filter,
		state:    stateSelectIface,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadSchema
}

func (m *browserModel) loadSchema() tea.Msg {
	source, err := os.ReadFile(m.filename)
	if err != nil {
		return schemaLoadedMsg{err: err}
	}

	schema, err := webidl.Parse(string(source))
	if err != nil {
		return schemaLoadedMsg{err: err}
	}

	surface, err := bindgen.Generate(schema)
	if err != nil {
		return schemaLoadedMsg{err: err}
	}

	return schemaLoadedMsg{schema: schema, surface: surface}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
			case "ctrl+c":
				return m, tea.Quit
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.applyFilter()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateSelectIface {
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "up", "k":
			if m.state == stateSelectIface && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectIface && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectIface && len(m.visible) > 0 {
				m.preparePreview()
				m.state = statePreview
			}

		case "esc":
			if m.state == statePreview {
				m.state = stateSelectIface
				m.preview = ""
			}
		}

	case schemaLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.schema = msg.schema
		m.surface = msg.surface
		m.applyFilter()
	}

	return m, nil
}

// applyFilter rebuilds the visible index list from the filter text.
func (m *browserModel) applyFilter() {
	if m.surface == nil {
		return
	}

	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i := range m.surface.Interfaces {
		name := strings.ToLower(m.surface.Interfaces[i].Name)
		if needle == "" || strings.Contains(name, needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

// preparePreview emits the generated source for just the selected
// interface.
func (m *browserModel) preparePreview() {
	ib := m.surface.Interfaces[m.visible[m.selected]]
	single := &bindgen.Surface{Interfaces: []bindgen.InterfaceBinding{ib}}
	m.preview = string(bindgen.EmitGo(single, bindgen.EmitOptions{}))
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.surface == nil {
		return "Loading schema..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("bindgen"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectIface:
		if m.filter.Focused() || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}

		if len(m.visible) == 0 {
			b.WriteString("No interfaces match.\n")
		}
		for pos, idx := range m.visible {
			ib := &m.surface.Interfaces[idx]
			line := m.formatInterface(ib)
			if pos == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter preview • / filter • q quit"))

	case statePreview:
		ib := &m.surface.Interfaces[m.visible[m.selected]]
		b.WriteString(fmt.Sprintf("Generated bindings for %s:\n\n", ifaceStyle.Render(ib.Name)))
		b.WriteString(codeStyle.Render(m.preview))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *browserModel) formatInterface(ib *bindgen.InterfaceBinding) string {
	counts := fmt.Sprintf("%d method(s), %d attribute(s)", len(ib.Trampolines), len(ib.Attributes))
	return ifaceStyle.Render(ib.Name) + " " + typeStyle.Render(counts)
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
