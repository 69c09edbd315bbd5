package weather

import (
	"fmt"
	"sync"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/plansize/plansize/pkg/common"
	"github.com/plansize/plansize/pkg/weather/clearsky"
	"github.com/plansize/plansize/pkg/weather/renewableninja"
)

// Configured registers every weather provider this module ships and
// returns a Map selecting between them by flag, the same registry pattern
// the teacher repo uses for utility price providers: a small interface, a
// mutex-guarded name->Provider map, and a SetProvider test-injection hook.
func Configured() *Map {
	m := NewMap()
	m.SetProvider("renewableninja", renewableninja.Configured(common.HTTPClient(30*time.Second)))
	m.SetProvider("clearsky", clearsky.New())
	return m
}

// ConfiguredDefault returns the flag-selected default provider from
// Configured(), panicking if the selected name isn't registered — matching
// the teacher's storage.Configured fail-fast-at-startup posture.
func ConfiguredDefault() Provider {
	m := Configured()
	name := lflag.String("weather-provider", "renewableninja", "Weather provider to use (available: renewableninja, clearsky)")

	var p Provider
	lflag.Do(func() {
		var err error
		p, err = m.Provider(*name)
		if err != nil {
			panic(fmt.Sprintf("weather: %v", err))
		}
	})
	return p
}

// Map manages multiple weather providers, selectable by name.
type Map struct {
	mu        sync.Mutex
	providers map[string]Provider
}

// NewMap creates an empty weather provider Map.
func NewMap() *Map {
	return &Map{providers: make(map[string]Provider)}
}

// Provider returns the registered provider for name.
func (m *Map) Provider(name string) (Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.providers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown weather provider: %s", name)
}

// SetProvider registers (or overrides, for tests) the provider for name.
func (m *Map) SetProvider(name string, provider Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[name] = provider
}
