package main

import (
	"github.com/spf13/cobra"

	"github.com/kotoed/denizen/internal/profile"
)

func newSetCmd(o *options) *cobra.Command {
	var (
		email, firstName, lastName, group string
		powerMode                         bool
	)

	cmd := &cobra.Command{
		Use:   "set <denizen-id>",
		Short: "Update profile fields",
		Long: `Update profile fields of a denizen.

Only flags given on the command line are changed. An empty --email removes
the address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := o.service()

			form, err := profile.Load(ctx, svc, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("email") {
				form.SetEmail(email)
			}
			if flags.Changed("first-name") {
				form.SetProfileField(profile.FieldFirstName, firstName)
			}
			if flags.Changed("last-name") {
				form.SetProfileField(profile.FieldLastName, lastName)
			}
			if flags.Changed("group") {
				form.SetProfileField(profile.FieldGroup, group)
			}
			if flags.Changed("power-mode") {
				form.SetPowerMode(powerMode)
			}

			out := profile.NewCoordinator(form, svc, o.reporter()).Save(ctx)
			return report(cmd.OutOrStdout(), form, out, "The profile updated successfully")
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&group, "group", "", "Group number")
	cmd.Flags().BoolVar(&powerMode, "power-mode", false, "Enable power mode")

	return cmd
}
