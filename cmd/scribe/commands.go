package scribe

import (
	"fmt"

	"github.com/arthur-debert/scribe/internal/version"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/loader"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newTreeCmd() *cobra.Command {
	var (
		input string
		to    string
	)

	cmd := &cobra.Command{
		Use:     "tree [file|-]",
		Short:   MsgTreeShort,
		Long:    MsgTreeLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := loader.ParseInput(to)
			if err != nil || (out != loader.Markup && out != loader.YAML) {
				return errors.Newf(errors.ErrInvalidUsage, MsgErrTreeTo, to).WithDetail("to", to)
			}

			overrides := make(map[string]interface{})
			if cmd.Flags().Changed("input") {
				overrides["render.input"] = input
			}
			cfg, err := loadConfig(cmd, overrides)
			if err != nil {
				return err
			}

			r := &renderer{fs: afero.NewOsFs(), cfg: cfg, source: stdinName, stdin: cmd.InOrStdin()}
			if len(args) == 1 {
				r.source = args[0]
			}
			tree, err := r.tree()
			if err != nil {
				return err
			}

			data, err := loader.Encode(tree, out)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", MsgFlagInput)
	cmd.Flags().StringVarP(&to, "to", "t", string(loader.YAML), MsgFlagTreeTo)
	return cmd
}

func newActionsCmd() *cobra.Command {
	var (
		format string
		defs   []string
	)

	cmd := &cobra.Command{
		Use:     "actions",
		Short:   MsgActionsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := make(map[string]interface{})
			if cmd.Flags().Changed("format") {
				overrides["render.format"] = format
			}
			if cmd.Flags().Changed("definitions") {
				overrides["definitions"] = defs
			}
			cfg, err := loadConfig(cmd, overrides)
			if err != nil {
				return err
			}

			r := &renderer{fs: afero.NewOsFs(), cfg: cfg, stdout: cmd.OutOrStdout()}
			reg, err := r.registry(r.settings().Format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range reg.List() {
				if reg.Silent(name) {
					fmt.Fprintf(out, MsgActionSilent, name)
					continue
				}
				fmt.Fprintln(out, name)
			}
			fmt.Fprintf(out, MsgActionsCount, reg.Count())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().StringSliceVarP(&defs, "definitions", "d", nil, MsgFlagDefinitions)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "SCRIBE",
				Section: "1",
				Source:  "scribe " + version.Version,
				Manual:  "scribe manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
