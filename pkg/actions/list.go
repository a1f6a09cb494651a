package actions

import (
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
)

// List prints every argument as a bulleted item. Items are wrapped to
// the width left next to the bullet and continuation lines are indented
// to line up with the item text.
type List struct {
	bullet string
}

func NewList(bullet string) *List {
	return &List{bullet: bullet}
}

func (a *List) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := atLeast("list", arguments, 1); err != nil {
		return err
	}

	indent := utf8.RuneCountInString(a.bullet)
	width := doc.Width() - indent
	if width < 1 {
		width = 2
	}

	for i, item := range arguments {
		doc.AddText(a.bullet)

		sub := doc.SubWidth(width)
		if err := sub.Add(item); err != nil {
			return err
		}
		for line, ok := sub.Line(); ok; line, ok = sub.Line() {
			doc.AddText(line + "\n" + strings.Repeat(" ", indent))
		}
		doc.AddText(sub.Text())

		if i+1 < len(arguments) {
			doc.AddText("\n")
		}
	}
	return nil
}
