package savelink

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/savelink/pkg/manager"
	"github.com/arthur-debert/savelink/pkg/ui/confirmations"
	"github.com/arthur-debert/savelink/pkg/ui/view"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Short:   MsgHistoryShort,
		Long:    MsgHistoryLong,
		GroupID: "links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				ops, summary := m.HistoryReport()
				return a.render(cmd, view.History{Operations: ops, Summary: summary})
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: MsgHistoryClean,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				removed, err := m.CleanupInvalid()
				if err != nil {
					return err
				}
				return a.message(cmd, fmt.Sprintf(MsgCleaned, removed))
			})
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: MsgHistoryClear,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				if !yes {
					_, summary := m.HistoryReport()
					if summary.Total == 0 {
						return a.message(cmd, MsgCleared)
					}
					dialog := confirmations.NewConsoleDialog(cmd.InOrStdin(), cmd.ErrOrStderr())
					ok, err := dialog.Confirm(fmt.Sprintf(MsgClearQuestion, summary.Total), false)
					if err != nil {
						return err
					}
					if !ok {
						return a.message(cmd, MsgClearAborted)
					}
				}
				if err := m.ClearHistory(); err != nil {
					return err
				}
				return a.message(cmd, MsgCleared)
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.AddCommand(clearCmd)

	return cmd
}
