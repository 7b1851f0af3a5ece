// Package settings resolves lets-plot global settings. A Resolver owns an
// immutable table of values built from compiled-in defaults, LETS_PLOT_*
// environment variables and explicit settings, split into a production and a
// development namespace. The active namespace follows the build version: a
// version containing "dev" selects development.
//
// Lookups fall back to a live read of the environment when the table has no
// entry for the requested slot; an entry in the table always wins.
package settings
