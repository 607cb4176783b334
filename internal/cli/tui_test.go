package cli

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/servicescan/pkg/report"
)

func press(m FormatPickerModel, keys ...tea.KeyMsg) FormatPickerModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(FormatPickerModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFormatPicker(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.KeyMsg
		want   []report.Format
		cancel bool
	}{
		{"default is all", []tea.KeyMsg{keyEnter}, report.DefaultFormats, false},
		{"arrow to json", []tea.KeyMsg{keyDown, keyDown, keyEnter}, []report.Format{report.FormatJSON}, false},
		{"up stops at top", []tea.KeyMsg{keyUp, keyUp, keyEnter}, report.DefaultFormats, false},
		{"quick pick csv", []tea.KeyMsg{runeKey('4')}, []report.Format{report.FormatCSV}, false},
		{"quick pick graph", []tea.KeyMsg{runeKey('5')}, []report.Format{report.FormatDOT, report.FormatSVG}, false},
		{"out of range digit ignored", []tea.KeyMsg{runeKey('9'), keyEnter}, report.DefaultFormats, false},
		{"escape skips", []tea.KeyMsg{keyEsc}, nil, true},
		{"q skips", []tea.KeyMsg{runeKey('q')}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewFormatPickerModel(), tt.keys...)
			if m.Cancelled != tt.cancel {
				t.Errorf("Cancelled = %v, want %v", m.Cancelled, tt.cancel)
			}
			if !reflect.DeepEqual(m.Selected, tt.want) {
				t.Errorf("Selected = %v, want %v", m.Selected, tt.want)
			}
		})
	}
}

func TestFormatPickerView(t *testing.T) {
	m := press(NewFormatPickerModel(), keyDown)
	view := m.View()
	for _, want := range []string{"Select Output Format", "1. All (json, text, csv)", "▸ 2. Text structure", "4. CSV"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
