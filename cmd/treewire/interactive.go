package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/schemafile"
	"github.com/treewire/treewire/xmltext"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	shapeStyle = lipgloss.NewStyle().
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

type interactiveModel struct {
	err        error
	schemaFile string
	docFile    string
	schema     *schemafile.Schema
	doc        treewire.Node
	types      []typeInfo
	selected   int
	pathInput  textinput.Model
	result     string
	wire       string
	state      modelState
}

type typeInfo struct {
	name  string
	shape string
}

type modelState int

const (
	stateSelectType modelState = iota
	stateInputPath
	stateShowResult
)

func newInteractiveModel(schemaFile, docFile string) *interactiveModel {
	return &interactiveModel{
		schemaFile: schemaFile,
		docFile:    docFile,
		state:      stateSelectType,
	}
}

type loadedMsg struct {
	err    error
	schema *schemafile.Schema
	doc    treewire.Node
	types  []typeInfo
}

type decodeResultMsg struct {
	err    error
	result string
	wire   string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	schema, err := schemafile.LoadFile(m.schemaFile)
	if err != nil {
		return loadedMsg{err: err}
	}

	var doc treewire.Node
	if m.docFile != "" {
		data, err := os.ReadFile(m.docFile)
		if err != nil {
			return loadedMsg{err: err}
		}
		doc, err = xmltext.Parse(data)
		if err != nil {
			return loadedMsg{err: err}
		}
	}

	var types []typeInfo
	for _, name := range schema.Types() {
		types = append(types, typeInfo{name: name, shape: schema.Describe(name)})
	}

	return loadedMsg{schema: schema, doc: doc, types: types}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputPath {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				if m.doc == nil {
					m.preparePathInput()
					m.state = stateInputPath
					return m, textinput.Blink
				}
				return m, m.decodeSelected

			case stateInputPath:
				m.docFile = m.pathInput.Value()
				return m, m.decodeSelected

			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.wire = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputPath:
				m.state = stateSelectType
			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.wire = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.schema = msg.schema
		m.doc = msg.doc
		m.types = msg.types

	case decodeResultMsg:
		m.result = msg.result
		m.wire = msg.wire
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputPath {
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) preparePathInput() {
	ti := textinput.New()
	ti.Placeholder = "path to document"
	ti.Prompt = "document: "
	ti.Width = 40
	ti.Focus()
	m.pathInput = ti
}

func (m *interactiveModel) decodeSelected() tea.Msg {
	if m.doc == nil {
		data, err := os.ReadFile(m.docFile)
		if err != nil {
			return decodeResultMsg{err: err}
		}
		doc, err := xmltext.Parse(data)
		if err != nil {
			return decodeResultMsg{err: err}
		}
		m.doc = doc
	}

	name := m.types[m.selected].name
	c, err := m.schema.Codec(name)
	if err != nil {
		return decodeResultMsg{err: err}
	}

	value, err := c.Decode(m.doc)
	if err != nil {
		return decodeResultMsg{err: err}
	}

	node, err := c.Encode(value)
	if err != nil {
		return decodeResultMsg{err: err}
	}
	wire, err := xmltext.RenderIndent(node, 2)
	if err != nil {
		return decodeResultMsg{err: err}
	}

	return decodeResultMsg{result: formatValue(value), wire: string(wire)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.types) == 0 {
		return "Loading schema..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("treewire"))
	b.WriteString(" ")
	b.WriteString(m.schemaFile)
	if m.docFile != "" {
		b.WriteString(" + ")
		b.WriteString(m.docFile)
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type to decode as:\n\n")
		for i, t := range m.types {
			line := typeNameStyle.Render(t.name) + ": " + shapeStyle.Render(t.shape)
			if m.schema.Root() == t.name {
				line += helpStyle.Render("  (root)")
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputPath:
		t := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Decoding as %s\n\n", typeNameStyle.Render(t.name)))
		b.WriteString(m.pathInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter load • esc back"))

	case stateShowResult:
		t := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Decoded as %s:\n\n", typeNameStyle.Render(t.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
			b.WriteString("\n\nRe-encoded:\n")
			b.WriteString(shapeStyle.Render(m.wire))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(schemaFile, docFile string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(schemaFile, docFile), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
