package actions

import (
	"strings"

	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
)

// Align renders its argument as a paragraph of its own with the given
// alignment
type Align struct {
	alignment buffer.Alignment
}

func NewAlign(alignment buffer.Alignment) *Align {
	return &Align{alignment: alignment}
}

func (a *Align) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := exactly("align", arguments, 1); err != nil {
		return err
	}

	sub := doc.Sub()
	sub.SetAlignment(a.alignment)
	if err := sub.Add(arguments[0]); err != nil {
		return err
	}
	sub.AddText("\n")

	contents := sub.Text()
	if strings.HasSuffix(contents, "\n\n") {
		contents = contents[:len(contents)-1]
	}
	doc.AddText(contents)
	return nil
}
