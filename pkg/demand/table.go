package demand

import (
	_ "embed"
	"bytes"
	"fmt"

	"github.com/plansize/plansize/pkg/appliance"
	"gopkg.in/yaml.v3"
)

//go:embed appliances.yaml
var defaultTableYAML []byte

// Table is the static household appliance catalog: per-appliance
// parameters, alias expansion (e.g. "air conditioner" standing in for
// separate weekday/weekend definitions), which appliances are seasonally
// scaled by cooling demand, and how often a household is assumed to own
// each appliance at all. This is pure data — see SPEC_FULL.md §3 —
// loaded with a strict yaml.v3 decoder so a typo in the
// table fails fast instead of silently zeroing a field.
type Table struct {
	Appliances map[string]appliance.Params `yaml:"-"`
	Aliases    map[string][]string         `yaml:"aliases"`
	Seasonal   map[string]bool             `yaml:"seasonal"`
	Occurrence map[string]float64          `yaml:"occurrence"`
}

type rawTable struct {
	Appliances []appliance.Params  `yaml:"appliances"`
	Aliases    map[string][]string `yaml:"aliases"`
	Seasonal   map[string]bool     `yaml:"seasonal"`
	Occurrence map[string]float64  `yaml:"occurrence"`
}

// DefaultTable loads the table embedded into the binary at build time.
func DefaultTable() (Table, error) {
	return LoadTable(defaultTableYAML)
}

// LoadTable decodes an appliance table from YAML, rejecting unknown
// fields so a misspelled key in a custom table is caught at load time
// rather than silently ignored.
func LoadTable(data []byte) (Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rawTable
	if err := dec.Decode(&raw); err != nil {
		return Table{}, fmt.Errorf("demand: decode appliance table: %w", err)
	}

	t := Table{
		Appliances: make(map[string]appliance.Params, len(raw.Appliances)),
		Aliases:    raw.Aliases,
		Seasonal:   raw.Seasonal,
		Occurrence: raw.Occurrence,
	}
	for _, a := range raw.Appliances {
		if err := a.Validate(); err != nil {
			return Table{}, fmt.Errorf("demand: %w", err)
		}
		t.Appliances[a.Name] = a
	}
	return t, nil
}

// Expand resolves a canonical appliance name (as stored in Occurrence) into
// the one or more concrete Params the catalog defines for it, applying
// alias expansion (e.g. "air conditioner" -> its weekday and weekend
// variants).
func (t Table) Expand(name string) ([]appliance.Params, error) {
	names := t.Aliases[name]
	if len(names) == 0 {
		names = []string{name}
	}
	out := make([]appliance.Params, 0, len(names))
	for _, n := range names {
		p, ok := t.Appliances[n]
		if !ok {
			return nil, fmt.Errorf("%w: no definition for appliance %q", appliance.ErrInvalidWindows, n)
		}
		out = append(out, p)
	}
	return out, nil
}
