package actions_test

import (
	"testing"

	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/registry"
	"github.com/stretchr/testify/require"
)

const ansiIgnore = `\x1b\[\d+m`

func plainDoc() *document.Document {
	return document.New(nil, nil)
}

func wrapDoc(width int) *document.Document {
	return document.New(nil, buffer.NewWrap(width))
}

func ansiDoc(t *testing.T, width int) *document.Document {
	t.Helper()
	re, err := buffer.CompileIgnore(ansiIgnore)
	require.NoError(t, err)
	return document.New(nil, buffer.NewWrap(width, buffer.WithIgnore(re)))
}

// docWith builds a document whose registry knows the given actions on
// top of the neutral ones
func docWith(buf buffer.Buffer, actions map[string]document.Action) *document.Document {
	b := registry.Extend(document.BaseRegistry())
	for name, action := range actions {
		registry.MustRegister(b, name, action)
	}
	return document.New(b.Build(), buf)
}

func run(t *testing.T, action document.Action, doc *document.Document, optionals, arguments []command.Value) string {
	t.Helper()
	require.NoError(t, action.Execute(doc, optionals, arguments))
	return doc.Text()
}
