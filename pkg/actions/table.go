package actions

import (
	"strings"

	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/logging"
)

// Table lays out its arguments in columns. The first argument renders to
// the column specs (see ParseColumns), the rest are the cells, row by
// row. Every cell is wrapped in a buffer of its column's width and the
// rows are printed line by line until all cells of the row are drained.
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (a *Table) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := atLeast("table", arguments, 1); err != nil {
		return err
	}
	if len(arguments) == 1 {
		return nil
	}

	// Column specs never wrap, whatever the table width
	specDoc := doc.SubWidth(0)
	if err := specDoc.Add(arguments[0]); err != nil {
		return err
	}
	spec := specDoc.Text()
	columns, err := ParseColumns(spec)
	if err != nil {
		logger := logging.GetLogger("actions.table")
		logger.Warn().Err(err).Str("spec", spec).Msg("Ignoring unreadable column widths")
		doc.AddError(err)
	}

	cells := arguments[1:]
	if doc.Width() == 0 {
		return addUnwrapped(doc, columns, cells)
	}

	widths := Layout(columns, doc.Width())
	for start := 0; start < len(cells); start += len(columns) {
		if err := addRow(doc, columns, widths, cells[start:min(start+len(columns), len(cells))]); err != nil {
			return err
		}
	}
	return nil
}

func addRow(doc *document.Document, columns []Column, widths []int, row []command.Value) error {
	subs := make([]*document.Document, len(columns))
	for i := range columns {
		subs[i] = doc.SubWidth(widths[i])
		subs[i].SetAlignment(columns[i].Alignment)
	}
	for i, cell := range row {
		if err := subs[i].Add(cell); err != nil {
			return err
		}
		subs[i].EndLine()
	}

	for {
		lines := make([]string, len(subs))
		more := false
		for i, sub := range subs {
			line, ok := sub.Line()
			lines[i] = line
			more = more || ok
		}
		if !more {
			return nil
		}

		for i, column := range columns {
			doc.AddText(column.Leader)
			if lines[i] != "" {
				doc.AddText(lines[i])
			} else {
				doc.AddText(strings.Repeat(" ", widths[i]))
			}
			doc.AddText(column.Trailer)
		}
		doc.EndLine()
	}
}

// addUnwrapped prints every row on a single line, for documents without
// a width
func addUnwrapped(doc *document.Document, columns []Column, cells []command.Value) error {
	for i, cell := range cells {
		column := columns[i%len(columns)]
		doc.AddText(column.Leader)
		if err := doc.Add(cell); err != nil {
			return err
		}
		doc.AddText(column.Trailer)
		if (i+1)%len(columns) == 0 || i == len(cells)-1 {
			doc.EndLine()
		}
	}
	return nil
}

// Layout computes the text width of every column for a table of the
// given total width.
//
// Leaders and trailers are taken off first. Columns are then visited in
// order: a fixed column, or one whose proportional share is below one
// character, keeps its own width (at least 1) and that width is removed
// from the pool. The others share what remains in proportion to their
// weight, and the rounding rest is spread over them from the middle out.
// When no column shares, the rest goes to the pulled-out columns that are
// not fixed, so the widths always add up to the table width.
func Layout(columns []Column, width int) []int {
	total := width
	weights := 0
	for _, c := range columns {
		total -= c.Filling()
		weights += c.Weight()
	}

	widths := make([]int, len(columns))
	flexible := make([]bool, len(columns))
	for i, c := range columns {
		if c.Fixed() || weights <= 0 || c.Width*total/weights < 1 {
			widths[i] = c.Weight()
			if !c.Fixed() {
				widths[i] = 1
			}
			total -= widths[i]
			weights -= widths[i]
			continue
		}
		flexible[i] = true
	}

	rest := total
	var flex []int
	for i, c := range columns {
		if !flexible[i] {
			continue
		}
		widths[i] = max(1, c.Width*total/weights)
		rest -= widths[i]
		flex = append(flex, i)
	}

	if rest > 0 && len(flex) == 0 {
		for i, c := range columns {
			if !c.Fixed() {
				flex = append(flex, i)
			}
		}
	}
	if rest > 0 && len(flex) > 0 {
		for k, extra := range buffer.MiddleOut(rest, len(flex)) {
			widths[flex[k]] += extra
		}
	}
	return widths
}
