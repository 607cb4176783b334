package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/servicescan/pkg/report"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// formatChoice is one entry of the output format menu.
type formatChoice struct {
	Label   string
	Formats []report.Format
}

var formatChoices = []formatChoice{
	{"All (json, text, csv)", report.DefaultFormats},
	{"Text structure", []report.Format{report.FormatText}},
	{"JSON", []report.Format{report.FormatJSON}},
	{"CSV", []report.Format{report.FormatCSV}},
	{"Graph (dot, svg)", []report.Format{report.FormatDOT, report.FormatSVG}},
}

// FormatPickerModel is the bubbletea model for choosing output formats.
// Keys 1-5 select an entry directly.
type FormatPickerModel struct {
	Choices   []formatChoice
	Cursor    int
	Selected  []report.Format
	Cancelled bool
}

func NewFormatPickerModel() FormatPickerModel {
	return FormatPickerModel{Choices: formatChoices}
}

func (m FormatPickerModel) Init() tea.Cmd {
	return nil
}

func (m FormatPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "ctrl+c", "esc":
		m.Cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Choices)-1 {
			m.Cursor++
		}
	case "enter":
		m.Selected = m.Choices[m.Cursor].Formats
		return m, tea.Quit
	default:
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(m.Choices) {
			m.Cursor = int(s[0] - '1')
			m.Selected = m.Choices[m.Cursor].Formats
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FormatPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Output Format"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  1-5 quick pick  q skip"))
	b.WriteString("\n\n")

	for i, c := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, c.Label)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickFormats runs the picker on in/out. It returns nil formats when the
// user skipped writing output.
func pickFormats(in io.Reader, out io.Writer) ([]report.Format, error) {
	p := tea.NewProgram(NewFormatPickerModel(), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("format picker: %w", err)
	}
	m := final.(FormatPickerModel)
	if m.Cancelled {
		return nil, nil
	}
	return m.Selected, nil
}
