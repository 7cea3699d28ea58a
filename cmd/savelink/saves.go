package savelink

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/savelink/pkg/manager"
	"github.com/arthur-debert/savelink/pkg/ui/view"
)

func newSavesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "saves",
		Short:   MsgSavesShort,
		Long:    MsgSavesLong,
		GroupID: "links",
	}

	var recursive bool
	add := &cobra.Command{
		Use:   "add <dir>",
		Short: MsgSavesAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				added, err := m.AddSaveDirs(args[0], recursive)
				if err != nil {
					return err
				}
				return a.render(cmd, view.SaveDirs{Action: "add", Dirs: added, Count: len(added)})
			})
		},
	}
	add.Flags().BoolVarP(&recursive, "recursive", "r", false, MsgFlagRecursive)

	remove := &cobra.Command{
		Use:     "remove <dir>...",
		Aliases: []string{"rm"},
		Short:   MsgSavesRmShort,
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var dirs []string
			err := a.withManager(func(m *manager.Manager) error {
				dirs = m.SaveDirs(toComplete)
				return nil
			})
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return dirs, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				removed, err := m.RemoveSaveDirs(args...)
				if err != nil {
					return err
				}
				return a.render(cmd, view.SaveDirs{Action: "remove", Dirs: args, Count: removed})
			})
		},
	}

	list := &cobra.Command{
		Use:     "list [filter]",
		Aliases: []string{"ls"},
		Short:   MsgSavesListShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			return a.withManager(func(m *manager.Manager) error {
				dirs := m.SaveDirs(filter)
				if dirs == nil {
					dirs = []string{}
				}
				return a.render(cmd, view.SaveDirs{Action: "list", Dirs: dirs, Count: len(dirs)})
			})
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}
