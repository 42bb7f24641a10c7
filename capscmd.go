package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/phelan/cairn/internal/capability"
)

// runCapabilities implements `cairn capabilities`: print the capability
// catalog as JSON for humans and agents.
func runCapabilities(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn capabilities", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var base string
	fs.StringVar(&base, "base", ".", "repository root")

	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := json.MarshalIndent(capability.Build(base), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	_, _ = fmt.Fprintln(stdout, string(data))
	return nil
}
