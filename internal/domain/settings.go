package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Settings holds the bank-wide configuration consumed by the valuation code.
// It is passed explicitly; nothing reads it from global state.
type Settings struct {
	ID                   string             `yaml:"id,omitempty" json:"id,omitempty"`
	InterestType         InterestConvention `yaml:"interest_type" json:"interest_type"`
	PenaltyPercent       decimal.Decimal    `yaml:"penalty_percent" json:"penalty_percent"`
	DefaultInterestRates RateTable          `yaml:"default_interest_rates" json:"default_interest_rates"`
	DayCount             dateutil.DayCount  `yaml:"day_count,omitempty" json:"day_count,omitempty"`
	UpdatedAt            string             `yaml:"-" json:"updated_at,omitempty"`
}

// RateEntry is one tenure → annual rate row of a rate table
type RateEntry struct {
	TenureMonths int
	RatePercent  decimal.Decimal
}

// RateTable maps tenures in months to default annual rates. Entries keep the
// order in which they were declared; the default-rate resolver depends on it.
type RateTable []RateEntry

// Get returns the rate declared for exactly tenureMonths
func (rt RateTable) Get(tenureMonths int) (decimal.Decimal, bool) {
	for _, e := range rt {
		if e.TenureMonths == tenureMonths {
			return e.RatePercent, true
		}
	}
	return decimal.Zero, false
}

// Tenures returns the declared tenures in ascending order
func (rt RateTable) Tenures() []int {
	out := make([]int, 0, len(rt))
	for _, e := range rt {
		out = append(out, e.TenureMonths)
	}
	sort.Ints(out)
	return out
}

// parseTenureKey turns a stringified tenure key into months. Keys that do not
// parse as integers are skipped by the decoders, matching the service client.
func parseTenureKey(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON writes the table as an object with stringified tenure keys in declaration order
func (rt RateTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range rt {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%s", strconv.Itoa(e.TenureMonths), e.RatePercent.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by stringified tenure, preserving key order
func (rt *RateTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*rt = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("default_interest_rates: expected object, got %v", tok)
	}

	table := RateTable{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("default_interest_rates[%s]: %w", key, err)
		}

		tenure, ok := parseTenureKey(key)
		if !ok {
			continue
		}
		var rate decimal.Decimal
		if err := rate.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("default_interest_rates[%s]: %w", key, err)
		}
		table = append(table, RateEntry{TenureMonths: tenure, RatePercent: rate})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*rt = table
	return nil
}

// MarshalYAML writes the table as a mapping in declaration order
func (rt RateTable) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range rt {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(e.TenureMonths)},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.RatePercent.String()},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping, preserving key order
func (rt *RateTable) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: default_interest_rates must be a mapping", value.Line)
	}

	table := RateTable{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		tenure, ok := parseTenureKey(keyNode.Value)
		if !ok {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(valNode.Value))
		if err != nil {
			return fmt.Errorf("line %d: rate for tenure %d: %w", valNode.Line, tenure, err)
		}
		table = append(table, RateEntry{TenureMonths: tenure, RatePercent: rate})
	}

	*rt = table
	return nil
}
