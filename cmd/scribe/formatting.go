package scribe

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"})
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFD75F"})
)

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// FormatError styles a command failure for standard error. Error
// details follow the message, sorted by key.
func FormatError(err error) string {
	msg := fmt.Sprintf(MsgErrorFormat, err)
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, details[k])
		}
		msg += " (" + strings.Join(pairs, ", ") + ")"
	}
	return errorStyle.Render(msg)
}

// Exit statuses
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps a command failure to the process exit status
func ExitCode(err error) int {
	if errors.IsErrorCode(err, errors.ErrInvalidUsage) {
		return ExitUsage
	}
	return ExitFailure
}

// printWarnings reports rendering diagnostics, one per line
func printWarnings(w io.Writer, diagnostics []error) {
	for _, d := range diagnostics {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf(MsgWarningFormat, errors.Message(d))))
	}
}
