package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/phelan/cairn/internal/scaffold"
)

// runScaffold implements `cairn scaffold`: write pre-commit and CI stubs
// that run cairn's checks.
func runScaffold(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn scaffold", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dir string
	fs.StringVar(&dir, "dir", ".", "directory to scaffold")

	if err := fs.Parse(args); err != nil {
		return err
	}

	preCommit, err := scaffold.WritePreCommit(dir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
	} else {
		_, _ = fmt.Fprintf(stdout, "Wrote %s\n", preCommit)
	}

	ci, err := scaffold.WriteCI(dir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
	} else {
		_, _ = fmt.Fprintf(stdout, "Wrote %s\n", ci)
	}

	return nil
}
