package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/phelan/cairn/internal/server"
)

// runServe implements `cairn serve`: publish generated artifacts over
// HTTP until interrupted.
func runServe(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn serve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		base string
		addr string
	)
	fs.StringVar(&base, "base", ".", "base path containing .ai-context and docs/adr")
	fs.StringVar(&addr, "addr", ":8000", "listen address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	srv := server.New(base, logger)

	_, _ = fmt.Fprintf(stdout, "Serving artifacts from %s on %s\n", base, addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
