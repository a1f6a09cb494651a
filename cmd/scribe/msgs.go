package scribe

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render marked-up text for plain and terminal output"
	MsgRenderShort     = "Render a command tree to text"
	MsgTreeShort       = "Print the command tree of an input file"
	MsgActionsShort    = "List the actions of an output format"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgVersionFormat  = "scribe %s (commit %s, built %s)\n"
	MsgWatching       = "Watching %s for changes, press Ctrl+C to stop\n"
	MsgWrote          = "Wrote %s\n"
	MsgWarningFormat  = "Warning: %s"
	MsgErrorFormat    = "Error: %v"
	MsgDiagnosticsSum = "%d warning(s)\n"
	MsgActionSilent   = "%s (silent)\n"
	MsgActionsCount   = "%d action(s)\n"

	// Error messages
	MsgErrWatchStdin = "cannot watch standard input, give an input file"
	MsgErrTreeTo     = "unknown tree output '%s', use markup or yaml"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default $XDG_CONFIG_HOME/scribe/config.toml)"
	MsgFlagWidth       = "Line width of the output"
	MsgFlagFormat      = "Output format: plain, ascii, ansi or auto"
	MsgFlagInput       = "Input syntax: markup, yaml, xml or auto"
	MsgFlagDefinitions = "Action definition files (TOML or YAML), may be repeated"
	MsgFlagOutput      = "Write to this file instead of standard output"
	MsgFlagDM          = "Render in DM mode"
	MsgFlagWatch       = "Render again whenever the input changes"
	MsgFlagTreeTo      = "Tree output syntax: markup or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/tree-long.txt
	msgTreeLongRaw string
	MsgTreeLong    = strings.TrimSpace(msgTreeLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
