package dateutil

import (
	"fmt"
	"strings"
)

// DayCount is the convention used to turn a span of days into a year fraction
type DayCount string

const (
	// ACT365Fixed divides actual days by 365. This is what the FD service uses.
	ACT365Fixed DayCount = "ACT/365F"
	// ACT36525 divides actual days by 365.25
	ACT36525 DayCount = "ACT/365.25"
)

// DefaultDayCount is applied when settings leave the convention unset
const DefaultDayCount = ACT365Fixed

// ParseDayCount accepts the canonical names plus a few common spellings
func ParseDayCount(s string) (DayCount, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultDayCount, nil
	case "ACT/365F", "ACT/365", "ACT365F", "365":
		return ACT365Fixed, nil
	case "ACT/365.25", "ACT36525", "365.25":
		return ACT36525, nil
	default:
		return "", fmt.Errorf("unsupported day count convention %q (valid: ACT/365F, ACT/365.25)", s)
	}
}

// Basis returns the number of days in a year under the convention
func (dc DayCount) Basis() float64 {
	switch dc {
	case ACT36525:
		return 365.25
	default:
		return 365.0
	}
}

// Valid reports whether dc is one of the supported conventions (empty counts as default)
func (dc DayCount) Valid() bool {
	return dc == "" || dc == ACT365Fixed || dc == ACT36525
}

// Normalize maps the empty convention to DefaultDayCount
func (dc DayCount) Normalize() DayCount {
	if dc == "" {
		return DefaultDayCount
	}
	return dc
}

// YearFraction computes the year fraction between two dates under dc
func (dc DayCount) YearFraction(start, end Date) float64 {
	return float64(DaysBetween(start, end)) / dc.Basis()
}
