package actions

import (
	"strconv"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
)

// Footnote leaves a superscript marker in the text and registers its
// argument as the footnote body. The marker is the first optional, or
// the next footnote number.
type Footnote struct{}

func NewFootnote() *Footnote {
	return &Footnote{}
}

func (a *Footnote) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := exactly("footnote", arguments, 1); err != nil {
		return err
	}

	var marker string
	if len(optionals) == 0 {
		marker = strconv.Itoa(doc.FootnoteCounter())
	} else {
		var err error
		if marker, err = doc.Render(optionals[0]); err != nil {
			return err
		}
	}

	if err := doc.Add(command.New("super", command.Text(marker))); err != nil {
		return err
	}
	doc.AddFootnote(marker, arguments[0])
	return nil
}
