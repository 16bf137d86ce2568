package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all Bubbletea update logic for the prompt model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return resize(m, msg.Width, msg.Height), nil
	}
	if m.ActiveView != ViewEditing {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	if m.ActiveView != ViewEditing {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyCtrlD:
		m.ActiveView = ViewSubmitted
		m.input.Blur()
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyCtrlC:
		m.ActiveView = ViewCancelled
		m.input.Blur()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
