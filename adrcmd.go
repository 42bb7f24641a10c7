package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/phelan/cairn/internal/adr"
)

// runADR implements `cairn adr <title>`: bootstrap the next numbered
// decision record.
func runADR(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn adr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		root   string
		status string
	)
	fs.StringVar(&root, "root", ".", "repository root")
	fs.StringVar(&status, "status", "Proposed", "initial record status")

	if err := fs.Parse(reorderArgs(args, map[string]bool{
		"-root": true, "--root": true,
		"-status": true, "--status": true,
	})); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("a record title is required")
	}
	title := strings.Join(fs.Args(), " ")

	path, err := adr.Bootstrap(filepath.Join(root, "docs", "adr"), title, status)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Created %s\n", path)
	return nil
}

// runRFE implements `cairn rfe <adr-id> <description>`: bootstrap a
// request-for-enhancement for a change that conflicts with a record.
func runRFE(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn rfe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var root string
	fs.StringVar(&root, "root", ".", "repository root")

	if err := fs.Parse(reorderArgs(args, map[string]bool{"-root": true, "--root": true})); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("an ADR id and a description are required")
	}
	adrID := fs.Arg(0)
	description := strings.Join(fs.Args()[1:], " ")

	path, err := adr.BootstrapRFE(filepath.Join(root, "docs", "rfes"), adrID, description)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Created %s\n", path)
	return nil
}
