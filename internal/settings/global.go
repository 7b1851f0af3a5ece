package settings

import "sync"

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the process-wide resolver, built on first use from the
// compiled version and the process environment. It and the package-level
// getters below serve library callers that have no resolver injected; it
// carries no explicit settings, so programs that take --set or a config
// file build their own with New.
func Default() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = New()
	})
	return defaultResolver
}

// HasValue reports whether the setting is defined on the default resolver.
func HasValue(name string) bool {
	return Default().HasValue(name)
}

// GetValue resolves a setting on the default resolver.
func GetValue(name string) (Value, error) {
	return Default().Value(name)
}

// GetString resolves a text setting on the default resolver.
func GetString(name string) (string, error) {
	return Default().String(name)
}

// GetBool resolves a boolean setting on the default resolver.
func GetBool(name string) (bool, error) {
	return Default().Bool(name)
}
