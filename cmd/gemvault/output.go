package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// view is a command result that also knows its plain text form.
type view interface {
	writeText(w io.Writer) error
}

func (a *app) render(cmd *cobra.Command, v view) error {
	w := cmd.OutOrStdout()
	switch a.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return v.writeText(w)
	}
}
