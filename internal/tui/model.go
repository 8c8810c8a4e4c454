package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/compare"
	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/internal/tui/components"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
)

// field identifies a focusable input of the opening form
type field int

const (
	fieldPrincipal field = iota
	fieldRate
	fieldTenure
	fieldStartDate
	fieldCount
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	settingsPath string
	settings     *domain.Settings

	previewer *calculation.Previewer
	engine    *calculation.Engine
	comparer  *compare.CompareEngine

	// Opening form
	principal  *components.ParameterSlider
	rate       *components.ParameterSlider
	tenure     *components.ParameterSlider
	startInput textinput.Model
	rateField  domain.RateField
	focus      field

	closureInput textinput.Model

	// seq increases on every form change; replies carry the seq they were
	// computed for
	seq        int
	preview    *domain.Preview
	previewErr error
	closure    *domain.ClosureSimulation
	closureErr error
	comparison *compare.ComparisonSet
	compareErr error

	// Fatal error state
	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a model that loads the bank settings from settingsPath
// on start
func NewModel(settingsPath string) Model {
	m := newModel(calculation.NewEngine())
	m.settingsPath = settingsPath
	m.loading = true
	m.loadingMessage = "Loading bank settings..."
	return m
}

// NewModelWithSettings creates a model around settings that are already
// loaded
func NewModelWithSettings(settings *domain.Settings, engine *calculation.Engine) Model {
	m := newModel(engine)
	m.applySettings(settings)
	return m
}

func newModel(engine *calculation.Engine) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = 10
	start.Width = 12
	start.SetValue(dateutil.FromTime(engineNow(engine)).String())

	closure := textinput.New()
	closure.Placeholder = "YYYY-MM-DD"
	closure.CharLimit = 10
	closure.Width = 12

	m := Model{
		currentScene: ScenePreview,
		engine:       engine,
		previewer:    calculation.NewPreviewer(engine, nil),
		comparer:     compare.NewCompareEngine(engine),
		principal: components.NewParameterSlider("Deposit amount",
			decimal.NewFromInt(100000), decimal.Zero, decimal.NewFromInt(10000000), decimal.NewFromInt(5000)).
			WithPrefix("₹"),
		rate: components.NewParameterSlider("Interest rate (p.a.)",
			decimal.Zero, config.MinRatePercent, config.MaxRatePercent, decimal.RequireFromString("0.05")).
			WithUnit("%").WithPlaces(2),
		tenure: components.NewParameterSlider("Tenure",
			decimal.NewFromInt(12), decimal.NewFromInt(1), decimal.NewFromInt(120), decimal.NewFromInt(1)).
			WithUnit(" months"),
		startInput:   start,
		closureInput: closure,
		rateField:    domain.RateField{Managed: true},
		width:        80,
		height:       24,
	}
	m.principal.IsFocused = true
	return m
}

func engineNow(e *calculation.Engine) time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.settings == nil {
		return loadSettingsCmd(m.settingsPath)
	}
	return m.previewCmd()
}

// loadSettingsCmd returns a command that reads and validates the settings file
func loadSettingsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		settings, err := config.NewInputParser().LoadSettings(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return SettingsLoadedMsg{Settings: settings}
	}
}

// applySettings installs settings and lets the rate table drive the rate
func (m *Model) applySettings(settings *domain.Settings) {
	m.settings = settings
	m.loading = false
	m.syncDefaultRate()
}

// syncDefaultRate pulls the default rate for the current tenure into the
// rate slider while the rate is still system-managed
func (m *Model) syncDefaultRate() {
	if m.settings == nil || !m.rateField.Managed {
		return
	}
	if calculation.ApplyDefaultRate(&m.rateField, m.settings.DefaultInterestRates, m.tenure.IntValue()) {
		m.rate.SetValue(m.rateField.Value)
		m.rate.Badge = "default"
	}
}

// touchRate marks the rate as typed by the officer
func (m *Model) touchRate() {
	m.rateField = domain.RateField{Value: m.rate.Value}
	m.rate.Badge = ""
}

// restoreDefaultRate hands the rate back to the rate table
func (m *Model) restoreDefaultRate() {
	m.rateField = domain.RateField{Managed: true}
	m.rate.Badge = ""
	m.syncDefaultRate()
}

// input builds the deposit input from the current form state. The rate is
// omitted while it is system-managed so the engine resolves it.
func (m Model) input() (*domain.DepositInput, error) {
	start, err := dateutil.ParseDate(m.startInput.Value())
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	in := &domain.DepositInput{
		DepositAmount: m.principal.Value,
		TenureMonths:  m.tenure.IntValue(),
		StartDate:     start,
	}
	if !m.rateField.Managed {
		rate := m.rateField.Value
		in.InterestRate = &rate
	}
	return in, nil
}

// previewCmd recomputes the maturity preview for the current form state
func (m Model) previewCmd() tea.Cmd {
	seq := m.seq
	input, err := m.input()
	if err != nil {
		return func() tea.Msg { return PreviewMsg{Seq: seq, Err: err} }
	}
	previewer, settings := m.previewer, m.settings
	return func() tea.Msg {
		preview, err := previewer.Preview(context.Background(), input, settings)
		if err != nil {
			return PreviewMsg{Seq: seq, Err: err}
		}
		return PreviewMsg{Seq: seq, Preview: &preview}
	}
}

// closureCmd simulates closing the previewed deposit on the date typed into
// the closure field
func (m Model) closureCmd() tea.Cmd {
	seq := m.seq
	if m.preview == nil {
		return func() tea.Msg {
			return ClosureMsg{Seq: seq, Err: fmt.Errorf("no valid preview to close")}
		}
	}
	closureDate, err := dateutil.ParseDate(m.closureInput.Value())
	if err != nil {
		return func() tea.Msg { return ClosureMsg{Seq: seq, Err: fmt.Errorf("closure date: %w", err)} }
	}
	engine, settings, terms := m.engine, m.settings, m.preview.Terms
	return func() tea.Msg {
		sim, err := engine.Simulate(terms, closureDate, settings, nil)
		if err != nil {
			return ClosureMsg{Seq: seq, Err: err}
		}
		return ClosureMsg{Seq: seq, Simulation: &sim}
	}
}

// compareCmd values the deposit at every tenure of the rate table
func (m Model) compareCmd() tea.Cmd {
	seq := m.seq
	input, err := m.input()
	if err != nil {
		return func() tea.Msg { return ComparisonMsg{Seq: seq, Err: err} }
	}
	comparer, settings := m.comparer, m.settings
	return func() tea.Msg {
		set, err := comparer.Compare(context.Background(), input, settings, compare.CompareOptions{
			Tenures: settings.DefaultInterestRates.Tenures(),
		})
		if err != nil {
			return ComparisonMsg{Seq: seq, Err: err}
		}
		return ComparisonMsg{Seq: seq, Comparison: set}
	}
}

// Preview returns the latest preview, or nil when the form is invalid
func (m Model) Preview() *domain.Preview {
	return m.preview
}

// RateManaged reports whether the rate still follows the rate table
func (m Model) RateManaged() bool {
	return m.rateField.Managed
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}
