package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/zombienet-go/internal/core/domain"
)

// HandleError routes an error returned by the app.
//
// Invocation errors raised before any network exists are printed as a
// warning and the process ends through the natural exit path with no exit
// code set. Usage errors set their own code. Anything else escaped the
// command flow and is handed to the guardian as an unhandled fault.
func HandleError(rt *Runtime, err error) {
	if err == nil {
		return
	}

	if domain.IsPreSession(err) {
		fmt.Fprintf(rt.Stderr, "  ⚠ %s\n", userMessage(err))
		return
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(rt.Stderr, msg)
		}
		rt.Guardian.SetExitCode(exitErr.ExitCode())
		return
	}

	rt.Guardian.Fail(err)
}

func userMessage(err error) string {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		return err.Error()
	}
	if de.Details == "" {
		return de.Message
	}
	return de.Message + ": " + de.Details
}
