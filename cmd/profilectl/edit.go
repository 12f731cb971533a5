package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kotoed/denizen/internal/profile/tui"
)

func newEditCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <denizen-id>",
		Short: "Edit a profile interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := tui.New(cmd.Context(), o.service(), args[0], o.reporter())

			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
