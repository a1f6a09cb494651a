package actions

import (
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
)

// Selection picks the action to run from the rendered value of one
// argument. When no action matches, the default argument is emitted as
// is.
type Selection struct {
	index    int
	fallback int
	actions  map[string]document.Action
}

// NewSelection dispatches on argument index (0-based), falling back to
// argument fallback
func NewSelection(index, fallback int, actions map[string]document.Action) *Selection {
	copied := make(map[string]document.Action, len(actions))
	for k, v := range actions {
		copied[k] = v
	}
	return &Selection{index: index, fallback: fallback, actions: copied}
}

func (a *Selection) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := atLeast("selection", arguments, 1); err != nil {
		return err
	}

	if len(arguments) <= a.index {
		return doc.Add(errorNote("not enough arguments for selection"))
	}

	key, err := doc.Render(arguments[a.index])
	if err != nil {
		return err
	}

	action, ok := a.actions[key]
	if !ok {
		if a.fallback < 0 || a.fallback >= len(arguments) {
			return doc.Add(errorNote("could not find default argument"))
		}
		return doc.Add(arguments[a.fallback])
	}
	return action.Execute(doc, optionals, arguments)
}

// errorNote is an in-document error marker, styled by the format's color
// command
func errorNote(message string) *command.Node {
	return command.New("color", command.Text("error"), command.Text(message))
}
