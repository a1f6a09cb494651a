package actions

import (
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperCase renders its argument in upper case, following the casing
// rules of a language
type UpperCase struct {
	tag language.Tag
}

func NewUpperCase() *UpperCase {
	return &UpperCase{tag: language.AmericanEnglish}
}

func (a *UpperCase) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := exactly("upper case", arguments, 1); err != nil {
		return err
	}

	text, err := doc.Render(arguments[0])
	if err != nil {
		return err
	}
	// Casers keep state, so each call gets its own.
	doc.AddText(cases.Upper(a.tag).String(text))
	return nil
}
