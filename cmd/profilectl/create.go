package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kotoed/denizen/pkg/profilesdk"
)

func newCreateCmd(o *options) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Register a new denizen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !profilesdk.ValidEmail(email) {
				return fmt.Errorf("invalid email %q", email)
			}

			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			password, err := p.secret("Password")
			if err != nil {
				return err
			}
			confirm, err := p.secret("Repeat password")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords don't match")
			}

			req := profilesdk.CreateDenizenRequest{Username: args[0], Password: password}
			if email != "" {
				req.Email = &email
			}

			resp, err := o.client().CreateDenizen(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create denizen: %w", err)
			}

			o.logger.Info("denizen created", "id", resp.ID, "username", args[0])
			fmt.Fprintln(cmd.OutOrStdout(), resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}
