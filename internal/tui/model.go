package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
)

// View identifies what the prompt is showing.
type View int

const (
	ViewEditing View = iota
	ViewSubmitted
	ViewCancelled
)

// model is the Bubbletea model for the text prompt.
type model struct {
	ActiveView View
	title      string
	input      textarea.Model
	width      int
	height     int
}

var blinkCmd = textarea.Blink

// InitialModel creates the prompt model with a focused, empty text area.
func InitialModel(title string, width, height int) model {
	ta := textarea.New()
	ta.Placeholder = "Type the text, ctrl+d to submit"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	m := model{
		ActiveView: ViewEditing,
		title:      title,
		input:      ta,
	}
	return resize(m, width, height)
}

// Value returns the entered text.
func (m model) Value() string {
	return m.input.Value()
}

// resize fits the text area below the header and above the help line.
func resize(m model, width, height int) model {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-4, 10))
	m.input.SetHeight(max(height-8, 3))
	return m
}
