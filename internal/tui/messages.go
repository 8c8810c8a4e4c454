package tui

import (
	"github.com/rgehrsitz/fdgo/internal/compare"
	"github.com/rgehrsitz/fdgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	ScenePreview Scene = iota
	SceneClosure
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case ScenePreview:
		return "Preview"
	case SceneClosure:
		return "Premature closure"
	case SceneCompare:
		return "Compare tenures"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SettingsLoadedMsg signals the bank settings file has been read
type SettingsLoadedMsg struct {
	Settings *domain.Settings
}

// PreviewMsg carries the result of one recomputation. Seq identifies the form
// state it was computed for; results for older states are dropped.
type PreviewMsg struct {
	Seq     int
	Preview *domain.Preview
	Err     error
}

// ClosureMsg carries a premature-closure simulation
type ClosureMsg struct {
	Seq        int
	Simulation *domain.ClosureSimulation
	Err        error
}

// ComparisonMsg carries a tenure comparison
type ComparisonMsg struct {
	Seq        int
	Comparison *compare.ComparisonSet
	Err        error
}
