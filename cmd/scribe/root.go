package scribe

import (
	"github.com/arthur-debert/scribe/internal/version"
	"github.com/arthur-debert/scribe/pkg/cobrax/topics"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "scribe",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but report incorrect usage
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidUsage, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newActionsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.RendererFor(isTerminal(rootCmd.OutOrStdout()), 0),
	}
	if _, err := topics.InitializeWithOptions(rootCmd, topicsFS(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics are not available")
	}

	return rootCmd
}
