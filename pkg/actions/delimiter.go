package actions

import (
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
)

// Delimiter frames a command's output with fixed strings.
//
// Start and End surround everything. The per-element arrays are indexed
// modulo their length; an empty string means "nothing here", and an
// element whose start and end are both empty is dropped. Optionals and
// arguments are only emitted when at least one of their arrays is set.
type Delimiter struct {
	Start, End       string
	ArgStart, ArgEnd []string
	OptStart, OptEnd []string
}

// NewDelimiter creates a delimiter that only emits start and end
func NewDelimiter(start, end string) *Delimiter {
	return &Delimiter{Start: start, End: end}
}

// WithArguments sets the per-argument delimiters
func (d *Delimiter) WithArguments(start, end []string) *Delimiter {
	d.ArgStart = append([]string(nil), start...)
	d.ArgEnd = append([]string(nil), end...)
	return d
}

// WithOptionals sets the per-optional delimiters
func (d *Delimiter) WithOptionals(start, end []string) *Delimiter {
	d.OptStart = append([]string(nil), start...)
	d.OptEnd = append([]string(nil), end...)
	return d
}

func (d *Delimiter) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	doc.AddText(d.Start)
	if err := delimit(doc, optionals, d.OptStart, d.OptEnd); err != nil {
		return err
	}
	if err := delimit(doc, arguments, d.ArgStart, d.ArgEnd); err != nil {
		return err
	}
	doc.AddText(d.End)
	return nil
}

func delimit(doc *document.Document, values []command.Value, starts, ends []string) error {
	if len(starts) == 0 && len(ends) == 0 {
		return nil
	}
	for i, v := range values {
		start, end := cycle(starts, i), cycle(ends, i)
		if start == "" && end == "" {
			continue
		}
		doc.AddText(start)
		if err := doc.Add(v); err != nil {
			return err
		}
		doc.AddText(end)
	}
	return nil
}

func cycle(values []string, i int) string {
	if len(values) == 0 {
		return ""
	}
	return values[i%len(values)]
}
