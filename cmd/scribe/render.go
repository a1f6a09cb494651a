package scribe

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/config"
	"github.com/arthur-debert/scribe/pkg/definitions"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/formats"
	"github.com/arthur-debert/scribe/pkg/loader"
	"github.com/arthur-debert/scribe/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const stdinName = "-"

type renderFlags struct {
	width       int
	format      string
	input       string
	definitions []string
	output      string
	dm          bool
	watch       bool
}

func newRenderCmd() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:     "render [file|-]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, renderOverrides(cmd, flags))
			if err != nil {
				return err
			}

			r := &renderer{
				fs:     afero.NewOsFs(),
				cfg:    cfg,
				source: stdinName,
				output: flags.output,
				stdin:  cmd.InOrStdin(),
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			if len(args) == 1 {
				r.source = args[0]
			}

			if flags.watch {
				return r.watch(cmd.Context())
			}
			return r.render()
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, MsgFlagWidth)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", MsgFlagInput)
	cmd.Flags().StringSliceVarP(&flags.definitions, "definitions", "d", nil, MsgFlagDefinitions)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&flags.dm, "dm", false, MsgFlagDM)
	cmd.Flags().BoolVar(&flags.watch, "watch", false, MsgFlagWatch)

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range formats.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("input", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(loader.Markup), string(loader.YAML), string(loader.XML), string(loader.Auto)},
			cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// renderOverrides turns the flags given on the command line into config
// overrides. Flags left out keep the configured values.
func renderOverrides(cmd *cobra.Command, flags *renderFlags) map[string]interface{} {
	overrides := make(map[string]interface{})
	if cmd.Flags().Changed("width") {
		overrides["render.width"] = flags.width
	}
	if cmd.Flags().Changed("format") {
		overrides["render.format"] = flags.format
	}
	if cmd.Flags().Changed("input") {
		overrides["render.input"] = flags.input
	}
	if cmd.Flags().Changed("dm") {
		overrides["render.dm"] = flags.dm
	}
	if cmd.Flags().Changed("definitions") {
		overrides["definitions"] = flags.definitions
	}
	return overrides
}

func loadConfig(cmd *cobra.Command, overrides map[string]interface{}) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return config.Load(config.Options{Path: path, Overrides: overrides})
}

// renderer renders one input with fixed settings
type renderer struct {
	fs     afero.Fs
	cfg    *config.Config
	source string
	output string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *renderer) fromStdin() bool {
	return r.source == stdinName || r.source == ""
}

// settings resolves the output format. Files never get escape sequences
// from the auto format.
func (r *renderer) settings() formats.Settings {
	return r.cfg.Settings(r.output == "" && isTerminal(r.stdout))
}

// registry returns the format's actions extended by the definition files
func (r *renderer) registry(format formats.Format) (*document.Registry, error) {
	reg, err := formats.RegistryFor(format)
	if err != nil {
		return nil, err
	}
	if len(r.cfg.Definitions) == 0 {
		return reg, nil
	}

	var defs []definitions.Definition
	for _, path := range r.cfg.Definitions {
		loaded, err := definitions.Load(r.fs, path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return definitions.Extend(reg, defs)
}

func (r *renderer) tree() (command.Value, error) {
	in := r.cfg.InputFormat()
	if !r.fromStdin() {
		return loader.Load(r.fs, r.source, in)
	}

	data, err := io.ReadAll(r.stdin)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "cannot read standard input")
	}
	if in == loader.Auto {
		in = loader.Markup
	}
	return loader.Decode(data, in)
}

// render renders the input once, writes the result and reports the
// diagnostics as warnings
func (r *renderer) render() error {
	logger := logging.GetLogger("cmd.render")
	done := logging.LogOperationStart(logger, "render")
	defer done()

	settings := r.settings()
	reg, err := r.registry(settings.Format)
	if err != nil {
		return err
	}
	tree, err := r.tree()
	if err != nil {
		return err
	}

	doc, err := formats.NewWith(settings, reg, document.WithDM(r.cfg.Render.DM))
	if err != nil {
		return err
	}
	if err := doc.Add(tree); err != nil {
		return err
	}

	if r.output != "" {
		if err := doc.Save(r.fs, r.output); err != nil {
			return err
		}
	} else if err := r.writeStdout(doc); err != nil {
		return err
	}

	diagnostics := doc.Errors()
	for _, d := range diagnostics {
		logger.Warn().Err(d).Msg("Rendering diagnostic")
	}
	printWarnings(r.stderr, diagnostics)

	logger.Info().
		Str("source", r.source).
		Str("format", string(settings.Format)).
		Int("width", settings.Width).
		Int("warnings", len(diagnostics)).
		Msg("Rendered document")
	return nil
}

// writeStdout writes the document followed by a newline when it lacks one
func (r *renderer) writeStdout(doc *document.Document) error {
	contents, err := doc.Contents()
	if err != nil {
		return err
	}
	if !strings.HasSuffix(contents, "\n") {
		contents += "\n"
	}
	if _, err := io.WriteString(r.stdout, contents); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write to standard output")
	}
	return nil
}

// watched lists the files whose changes trigger a new render
func (r *renderer) watched() []string {
	files := []string{r.source}
	files = append(files, r.cfg.Definitions...)
	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			files[i] = abs
		}
	}
	return files
}

// watch renders, then renders again after every change of a watched file
// until ctx is done. Editors often replace files, so the directories are
// watched rather than the files.
func (r *renderer) watch(ctx context.Context) error {
	if r.fromStdin() {
		return errors.New(errors.ErrInvalidUsage, MsgErrWatchStdin)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.GetLogger("cmd.render")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot start file watcher")
	}
	defer watcher.Close()

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range r.watched() {
		files[f] = true
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "cannot watch '%s'", dir).
				WithDetail("path", dir)
		}
	}

	r.renderLogged()
	fmt.Fprintf(r.stderr, MsgWatching, r.source)

	rerun := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Input changed")
			if timer == nil {
				timer = time.AfterFunc(r.cfg.Watch.Debounce, func() {
					select {
					case rerun <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(r.cfg.Watch.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("File watcher error")
		case <-rerun:
			r.renderLogged()
		}
	}
}

// renderLogged renders and reports failures without stopping a watch
func (r *renderer) renderLogged() {
	if err := r.render(); err != nil {
		logger := logging.GetLogger("cmd.render")
		logger.Warn().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Render failed, still watching")
		fmt.Fprintln(r.stderr, FormatError(err))
	}
}
