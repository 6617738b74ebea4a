// Command machash computes and verifies Ethernet MAC hash filter indices
// and explores discriminator byte collisions for custom frame formats.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/soypat/machash/hashcheck"
	"github.com/soypat/machash/internal/ui"
	"github.com/spf13/cobra"
)

var (
	programname = "machash"
	version     = "dev"
	commit      = "unknown_commit"
)

func main() {
	os.Exit(run(newRootCmd(hashcheck.KnownVectors), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes root with args and returns the process exit code:
// 0 on success, 1 if verification mismatched or the command failed.
func run(root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errVerifyFailed) {
		log := ui.NewLogger(logOutput(stderr), zerolog.InfoLevel)
		log.Error().Err(err).Msg(programname + " failed")
	}
	return 1
}

// logOutput returns nil for the process stderr so the logger uses a colorable console.
func logOutput(w io.Writer) io.Writer {
	if w == os.Stderr {
		return nil
	}
	return w
}
