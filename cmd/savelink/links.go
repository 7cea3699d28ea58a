package savelink

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/savelink/pkg/manager"
	"github.com/arthur-debert/savelink/pkg/ui/view"
)

func (a *app) renderChange(cmd *cobra.Command, action string, change manager.Change) error {
	return a.render(cmd, view.Change{Action: action, Change: change})
}

func newOverrideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "override <game> <dir>",
		Short:   MsgOverrideShort,
		Long:    MsgOverrideLong,
		Example: MsgOverrideExample,
		GroupID: "links",
		Args:    cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return a.gameNamesCompletion(cmd, args, toComplete)
			case 1:
				return nil, cobra.ShellCompDirectiveFilterDirs
			default:
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				change, err := m.Override(args[0], args[1])
				if err != nil {
					return err
				}
				return a.renderChange(cmd, "override", change)
			})
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "reset <game>",
		Short:             MsgResetShort,
		GroupID:           "links",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.gameNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				change, err := m.Reset(args[0])
				if err != nil {
					return err
				}
				return a.renderChange(cmd, "reset", change)
			})
		},
	}
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "undo",
		Short:   MsgUndoShort,
		GroupID: "links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				change, err := m.Undo()
				if err != nil {
					return err
				}
				return a.renderChange(cmd, "undo", change)
			})
		},
	}
}

func newRedoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "redo",
		Short:   MsgRedoShort,
		GroupID: "links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				change, err := m.Redo()
				if err != nil {
					return err
				}
				return a.renderChange(cmd, "redo", change)
			})
		},
	}
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "sync <game>",
		Short:             MsgSyncShort,
		Long:              MsgSyncLong,
		GroupID:           "links",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.gameNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				info, err := m.SyncCopy(args[0])
				if err != nil {
					return err
				}
				if a.outFormat.IsStructured() {
					return a.render(cmd, info)
				}
				return a.message(cmd, fmt.Sprintf(MsgSynced, info.Path, info.Target))
			})
		},
	}
}
