package main

import (
	"github.com/spf13/cobra"

	"github.com/kotoed/denizen/internal/profile"
)

func newPasswdCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd <denizen-id>",
		Short: "Change a denizen's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := o.service()

			form, err := profile.Load(ctx, svc, args[0])
			if err != nil {
				return err
			}

			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			fields := []struct {
				f     profile.PasswordField
				label string
			}{
				{profile.FieldOldPassword, "Old password"},
				{profile.FieldNewPassword, "New password"},
				{profile.FieldNewPasswordConfirm, "Repeat password"},
			}
			for _, fld := range fields {
				v, err := p.secret(fld.label)
				if err != nil {
					return err
				}
				form.SetPasswordField(fld.f, v)
			}

			out := profile.NewCoordinator(form, svc, o.reporter()).SavePassword(ctx)
			return report(cmd.OutOrStdout(), form, out, "Password changed")
		},
	}
}
