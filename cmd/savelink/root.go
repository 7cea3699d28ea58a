// Package savelink is the savelink command line.
package savelink

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/savelink/internal/version"
	"github.com/arthur-debert/savelink/pkg/config"
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/manager"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/ui"
)

// app carries the state shared by one command invocation.
type app struct {
	verbosity int
	format    string
	settings  string

	outFormat ui.Format
	paths     *paths.Paths
	cfg       *config.Config
	logger    zerolog.Logger
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *app) {
	initTemplateFormatting()

	a := &app{}
	rootCmd := &cobra.Command{
		Use:     "savelink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrValidation, MsgNoCommandGiven)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&a.settings, "settings", "", MsgFlagSettings)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "games", Title: "GAMES:"},
		&cobra.Group{ID: "links", Title: "SAVE LINKS:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(
		newAddCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newValidateCmd(a),
		newInspectCmd(a),
		newOverrideCmd(a),
		newResetCmd(a),
		newUndoCmd(a),
		newRedoCmd(a),
		newSyncCmd(a),
		newHistoryCmd(a),
		newSavesCmd(a),
		newVersionCmd(a),
		newCompletionCmd(),
	)

	return rootCmd, a
}

// Execute runs the command line with args and returns the process exit
// code. Errors are rendered on the command's error stream in the selected
// output format.
func Execute(args []string) int {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	a.renderError(rootCmd.ErrOrStderr(), err)
	if errors.IsErrorCode(err, errors.ErrLocked) {
		return 3
	}
	return 1
}

func (a *app) setup(cmd *cobra.Command) error {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.outFormat = format

	a.paths = paths.New()
	a.logger = logging.SetupLogger(a.verbosity, a.paths.LogFilePath())
	a.logger.Debug().Str("command", cmd.CommandPath()).Msg("Command started")

	settings := a.settings
	if settings == "" {
		settings = a.paths.SettingsPath()
	}
	a.cfg, err = config.Load(config.Options{SettingsPath: settings})
	return err
}

// withManager opens the manager for the duration of fn.
func (a *app) withManager(fn func(*manager.Manager) error) error {
	m, err := manager.Open(a.cfg, a.paths, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close manager")
		}
	}()
	return fn(m)
}

func (a *app) renderer(w io.Writer) ui.Renderer {
	r, err := ui.NewRenderer(a.outFormat, w)
	if err != nil {
		r, _ = ui.NewRenderer(ui.FormatText, w)
	}
	return r
}

func (a *app) render(cmd *cobra.Command, result interface{}) error {
	return a.renderer(cmd.OutOrStdout()).RenderResult(result)
}

func (a *app) message(cmd *cobra.Command, msg string) error {
	return a.renderer(cmd.OutOrStdout()).RenderMessage(msg)
}

func (a *app) renderError(w io.Writer, err error) {
	if rerr := a.renderer(w).RenderError(err); rerr != nil {
		a.logger.Error().Err(err).Msg("Command failed")
	}
}
