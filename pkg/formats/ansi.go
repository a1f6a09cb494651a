package formats

import (
	"sync"

	"github.com/arthur-debert/scribe/pkg/actions"
	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/registry"
	"github.com/muesli/termenv"
)

// DefaultIgnore matches the select graphic rendition sequences the ANSI
// format emits
const DefaultIgnore = `\x1b\[\d+m`

func sgr(code string) string {
	return termenv.CSI + code + "m"
}

var (
	bold        = sgr(termenv.BoldSeq)
	unbold      = sgr("22")
	underline   = sgr(termenv.UnderlineSeq)
	ununderline = sgr("24")
	plainColor  = sgr("39")
)

var colors = map[string]termenv.ANSIColor{
	"black":   termenv.ANSIBlack,
	"red":     termenv.ANSIRed,
	"green":   termenv.ANSIGreen,
	"brown":   termenv.ANSIYellow,
	"blue":    termenv.ANSIBlue,
	"magenta": termenv.ANSIMagenta,
	"cyan":    termenv.ANSICyan,
	"white":   termenv.ANSIWhite,
	"error":   termenv.ANSIRed,
}

func foreground(c termenv.ANSIColor) string {
	return sgr(c.Sequence(false))
}

// wrapping surrounds every argument with on and off
func wrapping(on, off string) *actions.Delimiter {
	return actions.NewDelimiter("", "").WithArguments([]string{on}, []string{off})
}

// ANSIRegistry returns the actions of the terminal format: the ASCII
// actions with real bold, underline, emphasis and colours
var ANSIRegistry = sync.OnceValue(func() *document.Registry {
	b := registry.Extend(ASCIIRegistry())
	reg := func(name string, action document.Action) {
		registry.MustRegister(b, name, action)
	}

	reg("bold", wrapping(bold, unbold))
	reg("underline", wrapping(underline, ununderline))
	reg("emph", wrapping(foreground(termenv.ANSIRed), foreground(termenv.ANSIBlack)))
	reg("title", actions.NewMulti(
		actions.NewAlign(buffer.Center),
		wrapping(bold+underline, unbold+ununderline+"\n"),
	))

	// \color{name}{text}: the name itself is never printed
	byName := make(map[string]document.Action, len(colors))
	for name, c := range colors {
		byName[name] = actions.NewDelimiter("", "").
			WithArguments([]string{"", foreground(c)}, []string{"", plainColor})
	}
	reg("color", actions.NewSelection(0, 1, byName))

	return b.Build()
})
