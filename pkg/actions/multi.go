package actions

import (
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
)

// Multi chains actions. The first one sees the command's own inputs,
// every following one gets the previous rendering as its only argument.
type Multi struct {
	actions []document.Action
}

func NewMulti(first, second document.Action, rest ...document.Action) *Multi {
	actions := append([]document.Action{first, second}, rest...)
	return &Multi{actions: actions}
}

func (a *Multi) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := atLeast("multi", arguments, 1); err != nil {
		return err
	}

	sub := doc.Sub()
	if err := a.actions[0].Execute(sub, optionals, arguments); err != nil {
		return err
	}

	for _, action := range a.actions[1:] {
		text := sub.Text()
		sub = doc.Sub()
		if err := action.Execute(sub, nil, []command.Value{command.Text(text)}); err != nil {
			return err
		}
	}

	doc.AddText(sub.Text())
	return nil
}
