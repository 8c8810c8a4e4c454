package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fdgo/internal/tui/tuistyles"
)

// ParameterSlider is an adjustable numeric form field drawn as a bar.
// Values are decimals so repeated steps never drift.
type ParameterSlider struct {
	Label     string
	Value     decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
	Step      decimal.Decimal
	Places    int32  // digits shown after the point
	Prefix    string // e.g. "₹"
	Unit      string // e.g. "%", " mo"
	Badge     string // short tag shown next to the value, e.g. "default"
	Width     int
	IsFocused bool
}

// NewParameterSlider creates a slider; value is clamped into [min, max]
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
	p.SetValue(value)
	return p
}

func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

func (p *ParameterSlider) WithPrefix(prefix string) *ParameterSlider {
	p.Prefix = prefix
	return p
}

func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// Increment moves one step up. It reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement moves one step down. It reports whether the value changed.
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue stores value clamped to [Min, Max] and reports whether it changed
func (p *ParameterSlider) SetValue(value decimal.Decimal) bool {
	if value.LessThan(p.Min) {
		value = p.Min
	}
	if value.GreaterThan(p.Max) {
		value = p.Max
	}
	changed := !value.Equal(p.Value)
	p.Value = value
	return changed
}

// IntValue returns the value truncated to an int
func (p *ParameterSlider) IntValue() int {
	return int(p.Value.IntPart())
}

// Percentage returns the position of the value within the range, 0..1
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if span.IsZero() {
		return 0
	}
	f, _ := p.Value.Sub(p.Min).Div(span).Float64()
	return f
}

// FormattedValue is the value with prefix and unit, e.g. "7.25%"
func (p *ParameterSlider) FormattedValue() string {
	return p.Prefix + p.Value.StringFixed(p.Places) + p.Unit
}

// Render returns the label, value and bar on separate lines
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(p.FormattedValue()))
	if p.Badge != "" {
		b.WriteString(" ")
		b.WriteString(tuistyles.InfoStyle.Render("(" + p.Badge + ")"))
	}
	b.WriteString("\n")
	b.WriteString(p.renderBar())

	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	b.WriteString("\n")
	b.WriteString(muted.Render(p.Prefix + p.Min.StringFixed(p.Places) + p.Unit + "  ─  " + p.Prefix + p.Max.StringFixed(p.Places) + p.Unit))
	return b.String()
}

func (p *ParameterSlider) renderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 1 {
		filled = 1
	}
	if filled > p.Width {
		filled = p.Width
	}

	thumb := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(thumb.Render(strings.Repeat("━", filled-1) + "●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", p.Width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// RenderCompact returns a single line "Label: value"
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	return labelStyle.Render(p.Label+":") + " " + tuistyles.ParameterValueStyle.Render(p.FormattedValue())
}
