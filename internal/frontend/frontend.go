// Package frontend turns resolved settings into the options a plot export
// needs: how the lets-plot library is loaded, which map tiles a livemap layer
// uses and where geocoding requests go.
package frontend

import (
	"fmt"
	"html"
	"strings"

	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
)

// Resolver is the subset of *settings.Resolver used here.
type Resolver interface {
	HasValue(name string) bool
	String(name string) (string, error)
	Bool(name string) (bool, error)
	Int(name string) (int, error)
	IsProduction() bool
	Version() string
}

// Mode describes how a rendered page obtains the lets-plot library.
type Mode string

const (
	// ModeStatic renders plain SVG without scripts.
	ModeStatic Mode = "static"
	// ModeEmbedded inlines the library into the page.
	ModeEmbedded Mode = "embedded"
	// ModeRemote loads the library from ScriptURL.
	ModeRemote Mode = "remote"
)

// Context is the loading decision for one export.
type Context struct {
	Mode          Mode   `json:"mode"`
	ScriptURL     string `json:"scriptUrl,omitempty"`
	IsolatedFrame *bool  `json:"isolatedFrame,omitempty"`
}

// NewContext reads no_js, offline, js_base_url, js_name and
// html_isolated_frame.
func NewContext(r Resolver) (Context, error) {
	var ctx Context

	noJS, err := optionalBool(r, settings.NoJS)
	if err != nil {
		return Context{}, err
	}
	offline, err := optionalBool(r, settings.Offline)
	if err != nil {
		return Context{}, err
	}

	if r.HasValue(settings.HTMLIsolatedFrame) {
		isolated, err := r.Bool(settings.HTMLIsolatedFrame)
		if err != nil {
			return Context{}, err
		}
		ctx.IsolatedFrame = &isolated
	}

	switch {
	case noJS:
		ctx.Mode = ModeStatic
	case offline:
		ctx.Mode = ModeEmbedded
	default:
		ctx.Mode = ModeRemote
		ctx.ScriptURL, err = ScriptURL(r)
		if err != nil {
			return Context{}, err
		}
	}

	return ctx, nil
}

// ScriptURL joins js_base_url with js_name, or with the versioned library
// file name when js_name is blank.
func ScriptURL(r Resolver) (string, error) {
	base, err := r.String(settings.JSBaseURL)
	if err != nil {
		return "", fmt.Errorf("resolve script base url: %w", err)
	}

	name := ""
	if r.HasValue(settings.JSName) {
		if name, err = r.String(settings.JSName); err != nil {
			return "", fmt.Errorf("resolve script name: %w", err)
		}
	} else if r.IsProduction() {
		name = fmt.Sprintf("lets-plot-%s.min.js", r.Version())
	} else {
		name = fmt.Sprintf("lets-plot-%s.js", r.Version())
	}

	return strings.TrimRight(base, "/") + "/" + name, nil
}

// ScriptTag returns the script element for ModeRemote and "" otherwise.
func (c Context) ScriptTag() string {
	if c.Mode != ModeRemote || c.ScriptURL == "" {
		return ""
	}
	return fmt.Sprintf(`<script type="text/javascript" data-lets-plot-script="library" src="%s"></script>`,
		html.EscapeString(c.ScriptURL))
}

func optionalBool(r Resolver, name string) (bool, error) {
	if !r.HasValue(name) {
		return false, nil
	}
	return r.Bool(name)
}
