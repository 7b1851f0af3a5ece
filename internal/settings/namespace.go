package settings

import (
	"strings"

	"github.com/eugenenazirov/lets-plot-settings/internal/version"
)

// Namespace selects one of the two parallel setting universes.
type Namespace uint8

const (
	Production Namespace = iota
	Development
)

const (
	devPrefix = "dev_"
	envPrefix = "LETS_PLOT_"
)

func (n Namespace) String() string {
	if n == Development {
		return "development"
	}
	return "production"
}

// ModeFor returns the namespace selected by a build version.
func ModeFor(v string) Namespace {
	if version.IsDev(v) {
		return Development
	}
	return Production
}

// IsProductionMode reports whether v is a production build version.
func IsProductionMode(v string) bool {
	return ModeFor(v) == Production
}

// Slot is the storage address of a setting.
type Slot struct {
	Namespace Namespace
	Key       string
}

// ActualName renders the namespace-qualified name, e.g. "dev_offline".
func (s Slot) ActualName() string {
	if s.Namespace == Development {
		return devPrefix + s.Key
	}
	return s.Key
}

// EnvName is the environment variable that overrides the slot.
func (s Slot) EnvName() string {
	return EnvName(s.ActualName())
}

// ResolveSlot maps a setting name to its slot under the given mode. A name
// carrying the dev_ prefix always lands in the development namespace.
func ResolveSlot(mode Namespace, name string) Slot {
	if key, ok := strings.CutPrefix(name, devPrefix); ok {
		return Slot{Namespace: Development, Key: key}
	}
	return Slot{Namespace: mode, Key: name}
}

// EnvName returns LETS_PLOT_ followed by the upper-cased actual name.
func EnvName(actualName string) string {
	return envPrefix + strings.ToUpper(actualName)
}
