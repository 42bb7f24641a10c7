// cairn extracts architecture metadata from a source tree and checks it
// against the decisions and contracts the repository declares.
package main

import (
	"fmt"
	"io"
	"os"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return fmt.Errorf("a command is required")
	}

	switch args[0] {
	case "docs":
		return runDocs(args[1:], stdout, stderr)
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "check-api":
		return runCheckAPI(args[1:], stdout, stderr)
	case "adr":
		return runADR(args[1:], stdout, stderr)
	case "rfe":
		return runRFE(args[1:], stdout, stderr)
	case "scaffold":
		return runScaffold(args[1:], stdout, stderr)
	case "capabilities":
		return runCapabilities(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], stdout, stderr)
	case "version", "-V", "--version":
		_, _ = fmt.Fprintf(stdout, "cairn %s\n", version)
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: cairn <command> [flags]

Commands:
  docs          Analyze a source tree and write system, component, and
                contract documents to the context directory
  check         Check files against the rules embedded in decision records
  check-api     Check outbound HTTP calls against declared API contracts
  adr           Create a numbered architecture decision record
  rfe           Create a request-for-enhancement for an ADR conflict
  scaffold      Write pre-commit and CI configuration stubs
  capabilities  Print the capability catalog as JSON
  serve         Serve generated artifacts over HTTP
  version       Print the version

Run 'cairn <command> -h' for command flags.
`)
}

// reorderArgs moves positional arguments after all flags so Go's flag
// package can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string, flagsWithValue map[string]bool) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
