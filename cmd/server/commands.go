package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/eugenenazirov/lets-plot-settings/internal/frontend"
	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
)

func runGet(w io.Writer, r *settings.Resolver, name, valueType string) error {
	var (
		out any
		err error
	)
	switch valueType {
	case "string":
		out, err = r.String(name)
	case "bool":
		out, err = r.Bool(name)
	case "int":
		out, err = r.Int(name)
	default:
		var value settings.Value
		value, err = r.Value(name)
		out = value
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, out)
	return err
}

func runList(w io.Writer, r *settings.Resolver) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tNAMESPACE\tKIND\tVALUE\n")
	for _, entry := range r.Entries() {
		value := entry.Value.String()
		if !entry.Value.Present() {
			value = "<unset>"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", entry.Name, entry.Namespace, entry.Value.Kind(), value)
	}
	return tw.Flush()
}

func runFrontend(w io.Writer, r *settings.Resolver) error {
	ctx, err := frontend.NewContext(r)
	if err != nil {
		return err
	}
	tiles, err := frontend.MaptilesSpec(r)
	if err != nil {
		return err
	}
	geocoding, err := frontend.GeocodingSpec(r)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(map[string]any{
		"mode":      r.Mode().String(),
		"context":   ctx,
		"maptiles":  tiles,
		"geocoding": geocoding,
	})
}

func runLivemap(w io.Writer, r *settings.Resolver, path string) error {
	spec, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plot spec: %w", err)
	}
	out, err := frontend.ApplyLivemapOptions(spec, r)
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
