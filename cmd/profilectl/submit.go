package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kotoed/denizen/internal/profile"
)

var errBlocked = errors.New("form has errors")

// report prints the form state after a submission and turns the outcome
// into the command's error.
func report(w io.Writer, form *profile.Controller, out profile.Outcome, okMsg string) error {
	snap := form.Snapshot()
	for _, m := range snap.Messages() {
		fmt.Fprintf(w, "error: %s\n", m)
	}

	switch out.State {
	case profile.Succeeded:
		fmt.Fprintln(w, okMsg)
		return nil
	case profile.Blocked:
		return fmt.Errorf("%w: %s", errBlocked, strings.Join(snap.Messages(), "; "))
	case profile.Failed:
		if errors.Is(out.Err, profile.ErrIncorrectOldPassword) {
			return fmt.Errorf("%w: %s", errBlocked, profile.IncorrectPassword.Message())
		}
		return fmt.Errorf("%s failed: %w", out.Kind, out.Err)
	default:
		return fmt.Errorf("%s was not submitted", out.Kind)
	}
}
