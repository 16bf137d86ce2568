package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// ErrCancelled is returned by Prompt when the user aborts with esc or ctrl+c.
var ErrCancelled = errors.New("input cancelled")

// wrapText wraps input text to lines no longer than maxWidth display cells.
// It wraps on word boundaries to avoid breaking words when possible.
func wrapText(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var lineBuilder strings.Builder
		lineWidth := 0
		spaceWidth := runewidth.StringWidth(" ")
		for _, word := range words {
			wordWidth := runewidth.StringWidth(word)
			addedWidth := wordWidth
			if lineWidth > 0 {
				addedWidth += spaceWidth
			}
			if lineWidth > 0 && lineWidth+addedWidth > maxWidth {
				lines = append(lines, lineBuilder.String())
				lineBuilder.Reset()
				lineWidth = 0
			}
			if lineWidth > 0 {
				lineBuilder.WriteString(" ")
				lineWidth += spaceWidth
			}
			lineBuilder.WriteString(word)
			lineWidth += wordWidth
		}
		lines = append(lines, lineBuilder.String())
	}
	return strings.Join(lines, "\n")
}

// Init starts the cursor blinking.
func (m model) Init() tea.Cmd {
	return blinkCmd
}

// Prompt opens a multi-line text editor on the terminal attached to in/out and
// returns what the user typed once they submit with ctrl+d.
func Prompt(title string, in io.Reader, out io.Writer) (string, error) {
	m := InitialModel(title, 80, 24)
	p := tea.NewProgram(&teaModelAdapter{m}, tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("interactive prompt: %w", err)
	}
	result := final.(*teaModelAdapter).m
	if result.ActiveView != ViewSubmitted {
		return "", ErrCancelled
	}
	return result.Value(), nil
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
