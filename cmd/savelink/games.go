package savelink

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/savelink/pkg/engine"
	"github.com/arthur-debert/savelink/pkg/manager"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/arthur-debert/savelink/pkg/ui/view"
)

func gameRow(g types.GameEntry, display string, err error) view.Game {
	row := view.Game{Name: g.Name, Path: g.Path, Display: display, Valid: g.Valid}
	if err != nil {
		row.Error = err.Error()
	}
	return row
}

// gameNamesCompletion provides shell completion for registered game names
func (a *app) gameNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if a.cfg == nil {
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}

	var names []string
	err := a.withManager(func(m *manager.Manager) error {
		for _, g := range m.Games() {
			names = append(names, g.Name)
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newAddCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "add <dir>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "games",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				game, err := m.AddGame(name, args[0])
				if err != nil {
					return err
				}
				if a.outFormat.IsStructured() {
					return a.render(cmd, view.GameList{Games: []view.Game{gameRow(game, engine.DisplayDefault, nil)}})
				}
				return a.message(cmd, fmt.Sprintf(MsgGameAdded, game.Name, game.SavePath))
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <game>",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		GroupID:           "games",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.gameNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				game, err := m.RemoveGame(args[0])
				if err != nil {
					return err
				}
				return a.message(cmd, fmt.Sprintf(MsgGameRemoved, game.Name))
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "games",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				list := view.GameList{Games: []view.Game{}}
				for _, g := range m.Games() {
					insp, err := m.Inspect(g.Path)
					if err != nil {
						return err
					}
					row := gameRow(insp.Game, insp.Display, nil)
					row.Error = insp.Error
					list.Games = append(list.Games, row)
				}
				return a.render(cmd, list)
			})
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   MsgValidateShort,
		GroupID: "games",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				outcomes, err := m.EstablishAll()
				if err != nil {
					return err
				}

				list := view.GameList{Games: []view.Game{}}
				for _, o := range outcomes {
					display := engine.DisplayInvalid
					if o.Err == nil {
						if display, err = m.DisplayTarget(o.Entry.Path); err != nil {
							return err
						}
					}
					list.Games = append(list.Games, gameRow(o.Entry, display, o.Err))
				}
				return a.render(cmd, list)
			})
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "inspect <game>",
		Short:             MsgInspectShort,
		GroupID:           "games",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.gameNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *manager.Manager) error {
				insp, err := m.Inspect(args[0])
				if err != nil {
					return err
				}
				return a.render(cmd, view.Inspection{Inspection: insp})
			})
		},
	}
}
