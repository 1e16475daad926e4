package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/bincodec/codec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	schemaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type schemaInfo struct {
	name    string
	coder   codec.Coder
	summary string
}

type interactiveModel struct {
	err      error
	schemas  []schemaInfo
	input    textinput.Model
	result   string
	selected int
	state    modelState
}

type modelState int

const (
	stateSelectSchema modelState = iota
	stateInputHex
	stateShowResult
)

func newInteractiveModel(catalog map[string]codec.Coder) *interactiveModel {
	infos := make([]schemaInfo, 0, len(catalog))
	for _, name := range catalogNames(catalog) {
		infos = append(infos, schemaInfo{
			name:    name,
			coder:   catalog[name],
			summary: summarize(catalog[name]),
		})
	}
	ti := textinput.New()
	ti.Placeholder = "hex bytes, e.g. ba5eba11"
	ti.Prompt = "hex: "
	ti.Width = 60
	return &interactiveModel{schemas: infos, input: ti, state: stateSelectSchema}
}

type decodeResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// Hex input never contains a q; everywhere else it quits.
			if m.state != stateInputHex {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectSchema && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectSchema && m.selected < len(m.schemas)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectSchema:
				m.input.SetValue("")
				m.input.Focus()
				m.state = stateInputHex

			case stateInputHex:
				return m, m.decodeInput

			case stateShowResult:
				m.state = stateSelectSchema
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputHex:
				m.state = stateSelectSchema
				m.input.Blur()
			case stateShowResult:
				m.state = stateSelectSchema
				m.result = ""
				m.err = nil
			}
		}

	case decodeResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputHex {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) decodeInput() tea.Msg {
	s := m.schemas[m.selected]
	data, err := parseHex(m.input.Value())
	if err != nil {
		return decodeResultMsg{err: err}
	}
	v, err := codec.Decode(s.coder, data)
	if err != nil {
		return decodeResultMsg{err: err}
	}
	return decodeResultMsg{result: renderValue(v)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bincodec decoder"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectSchema:
		b.WriteString("Select a schema to decode against:\n\n")
		for i, s := range m.schemas {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + s.name))
			} else {
				b.WriteString("  " + schemaStyle.Render(s.name))
			}
			b.WriteString("  ")
			b.WriteString(kindStyle.Render(s.summary))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputHex:
		s := m.schemas[m.selected]
		b.WriteString(fmt.Sprintf("Decoding against %s\n\n", schemaStyle.Render(s.name)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		s := m.schemas[m.selected]
		b.WriteString(fmt.Sprintf("Decoded %s:\n\n", schemaStyle.Render(s.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(catalog map[string]codec.Coder) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(catalog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
