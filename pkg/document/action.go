package document

import (
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/registry"
)

// Action renders one command into a document
type Action interface {
	Execute(doc *Document, optionals, arguments []command.Value) error
}

// ActionFunc adapts a function to the Action interface
type ActionFunc func(doc *Document, optionals, arguments []command.Value) error

func (f ActionFunc) Execute(doc *Document, optionals, arguments []command.Value) error {
	return f(doc, optionals, arguments)
}

// Registry maps command names to actions. A silent entry drops the command.
type Registry = registry.Registry[Action]

// Passthrough adds all optionals, then all arguments
var Passthrough Action = passthrough{}

type passthrough struct{}

func (passthrough) Execute(doc *Document, optionals, arguments []command.Value) error {
	for _, v := range optionals {
		if err := doc.Add(v); err != nil {
			return err
		}
	}
	for _, v := range arguments {
		if err := doc.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// BaseRegistry knows only the neutral grouping commands
func BaseRegistry() *Registry {
	b := registry.NewBuilder[Action]()
	registry.MustRegister(b, command.Neutral, Passthrough)
	registry.MustRegister(b, "baseCommand", Passthrough)
	return b.Build()
}
