package actions

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/errors"
)

// Hrule draws a line of dashes across the document. An optional
// argument gives the length as a percentage of the width.
type Hrule struct{}

func NewHrule() *Hrule {
	return &Hrule{}
}

func (a *Hrule) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	width := doc.Width()
	if len(optionals) > 0 {
		text, err := doc.Render(optionals[0])
		if err != nil {
			return err
		}
		percent, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || percent < 0 {
			return errors.Newf(errors.ErrInvalidUsage, "invalid rule percentage '%s'", text).
				WithDetail("action", "hrule")
		}
		width = width * percent / 100
	}

	doc.AddText("\n" + strings.Repeat("-", width) + "\n")
	return nil
}
