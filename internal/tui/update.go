package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyQuit     = key.NewBinding(key.WithKeys("ctrl+c"))
	keyNext     = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrev     = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keyIncrease = key.NewBinding(key.WithKeys("right", "l", "+"))
	keyDecrease = key.NewBinding(key.WithKeys("left", "h", "-"))
	keyDefault  = key.NewBinding(key.WithKeys("d"))
	keyConfirm  = key.NewBinding(key.WithKeys("enter"))
	keyBack     = key.NewBinding(key.WithKeys("esc"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene)

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case SettingsLoadedMsg:
		m.applySettings(msg.Settings)
		return m, m.previewCmd()

	case PreviewMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.preview = msg.Preview
		m.previewErr = msg.Err
		return m, nil

	case ClosureMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.closure = msg.Simulation
		m.closureErr = msg.Err
		return m, nil

	case ComparisonMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.comparison = msg.Comparison
		m.compareErr = msg.Err
		return m, nil
	}

	// Cursor blink and other input housekeeping
	var cmd tea.Cmd
	switch {
	case m.currentScene == SceneClosure:
		m.closureInput, cmd = m.closureInput.Update(msg)
	case m.focus == fieldStartDate:
		m.startInput, cmd = m.startInput.Update(msg)
	}
	return m, cmd
}

// editing reports whether keystrokes belong to a text field
func (m Model) editing() bool {
	switch m.currentScene {
	case ScenePreview:
		return m.focus == fieldStartDate
	case SceneClosure:
		return true
	}
	return false
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keyQuit) {
		return m, tea.Quit
	}

	if m.err != nil || m.loading {
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	if !m.editing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			return m.navigate(SceneHelp)
		case "p":
			return m.navigate(ScenePreview)
		case "x":
			return m.navigate(SceneClosure)
		case "c":
			return m.navigate(SceneCompare)
		}
	}

	if key.Matches(msg, keyBack) && m.currentScene != ScenePreview {
		return m.navigate(ScenePreview)
	}

	switch m.currentScene {
	case ScenePreview:
		return m.updatePreview(msg)
	case SceneClosure:
		return m.updateClosure(msg)
	}
	return m, nil
}

// navigate switches scenes and kicks off whatever the new scene displays
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == m.currentScene {
		return m, nil
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
	m.startInput.Blur()
	m.closureInput.Blur()

	switch scene {
	case ScenePreview:
		if m.focus == fieldStartDate {
			return m, m.startInput.Focus()
		}
	case SceneClosure:
		return m, m.closureInput.Focus()
	case SceneCompare:
		if m.comparison == nil {
			return m, m.compareCmd()
		}
	}
	return m, nil
}

// updatePreview handles the opening form
func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyNext):
		return m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, keyPrev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	if m.focus == fieldStartDate {
		before := m.startInput.Value()
		var cmd tea.Cmd
		m.startInput, cmd = m.startInput.Update(msg)
		if m.startInput.Value() == before {
			return m, cmd
		}
		m = m.formChanged()
		return m, tea.Batch(cmd, m.previewCmd())
	}

	switch {
	case key.Matches(msg, keyIncrease):
		return m.adjust(true)

	case key.Matches(msg, keyDecrease):
		return m.adjust(false)

	case key.Matches(msg, keyDefault):
		if m.rateField.Managed {
			return m, nil
		}
		m.restoreDefaultRate()
		m = m.formChanged()
		return m, m.previewCmd()
	}
	return m, nil
}

// setFocus moves focus between form fields
func (m Model) setFocus(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	m.principal.IsFocused = f == fieldPrincipal
	m.rate.IsFocused = f == fieldRate
	m.tenure.IsFocused = f == fieldTenure
	if f == fieldStartDate {
		return m, tea.Batch(m.startInput.Focus(), textinput.Blink)
	}
	m.startInput.Blur()
	return m, nil
}

// adjust steps the focused slider. Moving the rate takes it out of the rate
// table's hands; moving the tenure re-resolves a managed rate.
func (m Model) adjust(up bool) (tea.Model, tea.Cmd) {
	var slider = m.principal
	switch m.focus {
	case fieldRate:
		slider = m.rate
	case fieldTenure:
		slider = m.tenure
	}

	changed := slider.Decrement
	if up {
		changed = slider.Increment
	}
	if !changed() {
		return m, nil
	}

	switch m.focus {
	case fieldRate:
		m.touchRate()
	case fieldTenure:
		m.syncDefaultRate()
	}
	m = m.formChanged()
	return m, m.previewCmd()
}

// formChanged invalidates everything derived from the previous form state
func (m Model) formChanged() Model {
	m.seq++
	m.closure = nil
	m.closureErr = nil
	m.comparison = nil
	m.compareErr = nil
	return m
}

// updateClosure handles the premature-closure scene
func (m Model) updateClosure(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keyConfirm) {
		return m, m.closureCmd()
	}
	var cmd tea.Cmd
	m.closureInput, cmd = m.closureInput.Update(msg)
	return m, cmd
}
