package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kotoed/denizen/internal/profile"
)

func newShowCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <denizen-id>",
		Short: "Print a denizen's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := o.service().ReadProfile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to read profile: %w", err)
			}
			return printProfile(cmd.OutOrStdout(), rec)
		},
	}
}

func printProfile(w io.Writer, p profile.ProfileRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	row := func(k, v string) {
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", k, v)
	}
	row("ID", p.ID)
	row("Username", p.Username)
	row("Email", profile.Deref(p.Email))
	row("First name", profile.Deref(p.FirstName))
	row("Last name", profile.Deref(p.LastName))
	row("Group", profile.Deref(p.Group))
	row("Power mode", fmt.Sprintf("%t", p.PowerMode))
	for _, l := range p.OAuth {
		row("OAuth "+l.Provider, profile.Deref(l.UserID))
	}
	return tw.Flush()
}
