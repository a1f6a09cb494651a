package actions

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
)

// Pad replaces all whitespace in the trimmed rendering of its argument
// with a pad character and frames the result with it
type Pad struct {
	pad string
}

func NewPad(pad rune) *Pad {
	return &Pad{pad: string(pad)}
}

func (a *Pad) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := exactly("pad", arguments, 1); err != nil {
		return err
	}

	text, err := doc.Render(arguments[0])
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(a.pad)
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsSpace(r) {
			sb.WriteString(a.pad)
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteString(a.pad)

	doc.AddText(sb.String())
	return nil
}
