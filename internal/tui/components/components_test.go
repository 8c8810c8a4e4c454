package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParameterSlider_StepsAndClamps(t *testing.T) {
	s := NewParameterSlider("Rate", d("19.9"), d("0"), d("20"), d("0.05")).WithUnit("%").WithPlaces(2)

	assert.True(t, s.Increment())
	assert.Equal(t, "19.95%", s.FormattedValue())
	assert.True(t, s.Increment())
	assert.False(t, s.Increment(), "already at max")
	assert.Equal(t, "20.00%", s.FormattedValue())

	for i := 0; i < 10; i++ {
		s.Decrement()
	}
	assert.True(t, s.Value.Equal(d("19.5")), "decimal steps must not drift, got %s", s.Value)
}

func TestParameterSlider_SetValueClamps(t *testing.T) {
	s := NewParameterSlider("Tenure", d("500"), d("1"), d("120"), d("1"))
	assert.Equal(t, 120, s.IntValue())

	s.SetValue(d("-3"))
	assert.Equal(t, 1, s.IntValue())
	assert.InDelta(t, 0.0, s.Percentage(), 1e-9)
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("Principal", d("100000"), d("0"), d("1000000"), d("5000")).WithPrefix("₹")
	s.Badge = "default"
	out := s.Render()
	assert.True(t, strings.Contains(out, "Principal"))
	assert.True(t, strings.Contains(out, "₹100000"))
	assert.True(t, strings.Contains(out, "(default)"))
	assert.True(t, strings.Contains(s.RenderCompact(), "Principal:"))
}

func TestMetricGrid(t *testing.T) {
	assert.Equal(t, "", MetricGrid(nil, 2))

	cards := []*MetricCard{
		NewMetricCard("Maturity date", "2025-03-15"),
		NewMetricCard("Maturity amount", "₹1,07,000.00").WithTrend(true, "₹7,000.00"),
		NewMetricCard("Rate", "7.00%").WithNote("from rate table"),
	}
	out := MetricGrid(cards, 2)
	for _, want := range []string{"Maturity date", "₹1,07,000.00", "▲ ₹7,000.00", "from rate table"} {
		assert.True(t, strings.Contains(out, want), "missing %q", want)
	}
}
