package settings

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/eugenenazirov/lets-plot-settings/internal/version"
)

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Resolver answers setting lookups. It is safe for concurrent use: the
// table is never written after New returns.
type Resolver struct {
	version   string
	mode      Namespace
	table     map[Slot]Value
	lookupEnv LookupEnvFunc
}

// Option configures New.
type Option func(*options)

type options struct {
	version   string
	lookupEnv LookupEnvFunc
	explicit  []Assignment
	logger    *zap.Logger
}

// WithVersion sets the build version used to pick the namespace.
func WithVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithLookupEnv replaces os.LookupEnv, primarily for tests.
func WithLookupEnv(fn LookupEnvFunc) Option {
	return func(o *options) {
		o.lookupEnv = fn
	}
}

// Assignment is one explicit setting.
type Assignment struct {
	Name  string
	Value Value
}

// Assign is shorthand for an Assignment literal.
func Assign(name string, value Value) Assignment {
	return Assignment{Name: name, Value: value}
}

// WithExplicit adds explicit settings on top of the defaults and the
// environment. Names are mapped to slots the same way lookups are, and
// assignments are applied in order: when two names land in one slot
// (offline and dev_offline in a development build) the later one wins.
// Repeated options append. An absent value masks the key.
func WithExplicit(assignments ...Assignment) Option {
	return func(o *options) {
		o.explicit = append(o.explicit, assignments...)
	}
}

// WithLogger reports how the table was built.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds the settings table. Precedence per slot:
// explicit settings > non-empty environment variable > compiled-in default.
func New(opts ...Option) *Resolver {
	o := options{
		version:   version.Version,
		lookupEnv: os.LookupEnv,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Resolver{
		version:   o.version,
		mode:      ModeFor(o.version),
		lookupEnv: o.lookupEnv,
	}

	defaults := defaultEntries()
	r.table = make(map[Slot]Value, len(defaults)+len(o.explicit))
	for _, entry := range defaults {
		value := entry.value
		if entry.seeded {
			if env, ok := r.lookupEnv(entry.slot.EnvName()); ok && env != "" {
				o.logger.Debug("setting seeded from environment",
					zap.String("name", entry.slot.ActualName()),
					zap.String("env", entry.slot.EnvName()),
				)
				value = Text(env)
			}
		}
		r.table[entry.slot] = value
	}

	for _, a := range o.explicit {
		slot := ResolveSlot(r.mode, a.Name)
		o.logger.Debug("explicit setting applied",
			zap.String("name", slot.ActualName()),
			zap.Stringer("kind", a.Value.Kind()),
		)
		r.table[slot] = a.Value
	}

	o.logger.Debug("settings resolved",
		zap.String("version", r.version),
		zap.Stringer("mode", r.mode),
		zap.Int("entries", len(r.table)),
	)

	return r
}

// Version returns the build version the resolver was created with.
func (r *Resolver) Version() string {
	return r.version
}

// Mode returns the active namespace.
func (r *Resolver) Mode() Namespace {
	return r.mode
}

// IsProduction reports whether the production namespace is active.
func (r *Resolver) IsProduction() bool {
	return r.mode == Production
}

// Slot maps a setting name to its storage slot under the active mode.
func (r *Resolver) Slot(name string) Slot {
	return ResolveSlot(r.mode, name)
}

// ActualName returns the namespace-qualified name for a setting.
func (r *Resolver) ActualName(name string) string {
	return r.Slot(name).ActualName()
}

// raw returns the table entry for the slot, or the live environment value
// when the table has none.
func (r *Resolver) raw(slot Slot) Value {
	if value, ok := r.table[slot]; ok {
		return value
	}
	if env, ok := r.lookupEnv(slot.EnvName()); ok {
		return Text(env)
	}
	return Value{}
}

// HasValue reports whether the setting resolves to a usable value.
func (r *Resolver) HasValue(name string) bool {
	return r.raw(r.Slot(name)).Present()
}

// Value returns the resolved setting or ErrNotDefined.
func (r *Resolver) Value(name string) (Value, error) {
	slot := r.Slot(name)
	value := r.raw(slot)
	if !value.Present() {
		return Value{}, fmt.Errorf("%w: '%s'", ErrNotDefined, slot.ActualName())
	}
	return value, nil
}

// String returns a text setting.
func (r *Resolver) String(name string) (string, error) {
	value, err := r.Value(name)
	if err != nil {
		return "", err
	}

	s, ok := value.AsText()
	if !ok {
		return "", fmt.Errorf("%w: ['%s'] : %s, want string", ErrTypeMismatch, r.ActualName(name), value.Kind())
	}
	return s, nil
}

// Bool returns a boolean setting, parsing text values with ParseBool.
func (r *Resolver) Bool(name string) (bool, error) {
	value, err := r.Value(name)
	if err != nil {
		return false, err
	}

	switch value.Kind() {
	case KindBool:
		b, _ := value.AsBool()
		return b, nil
	case KindText:
		s, _ := value.AsText()
		b, err := ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("['%s'] : %w", r.ActualName(name), err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: ['%s'] : %s, want bool", ErrTypeMismatch, r.ActualName(name), value.Kind())
	}
}

// Int returns an integer setting stored as text.
func (r *Resolver) Int(name string) (int, error) {
	s, err := r.String(name)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: ['%s'] : %q is not an integer", ErrTypeMismatch, r.ActualName(name), s)
	}
	return n, nil
}

// Entry is one row of the settings table.
type Entry struct {
	Name      string
	Namespace Namespace
	Value     Value
}

// Entries returns the table sorted by actual name.
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, 0, len(r.table))
	for slot, value := range r.table {
		out = append(out, Entry{
			Name:      slot.ActualName(),
			Namespace: slot.Namespace,
			Value:     value,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
