// Package application provides application initialization and dependency wiring.
// It builds the settings resolver from the loaded configuration and creates the
// handler, router and HTTP server around it, keeping the main package focused
// on CLI parsing and orchestration.
package application
