// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, an optional dotenv file, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > Defaults. Besides server
// settings it carries the explicit lets-plot settings that the resolver
// places above LETS_PLOT_* variables.
package config
