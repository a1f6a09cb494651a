package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/dlclark/regexp2"
)

// Column is one column of a table layout.
//
// The textual form is
//
//	[f]width:alignment[,leader[,trailer]] [(name[#dir#])] [[-]title]
//
// where an "f" prefix makes the width fixed. Fixed columns are stored
// with a negative width.
type Column struct {
	Width     int
	Alignment buffer.Alignment
	Leader    string
	Trailer   string
	Name      string
	Title     string
	ImageDir  string
	HideSplit bool
}

// Fixed reports whether the column keeps its width regardless of the
// space available
func (c Column) Fixed() bool {
	return c.Width < 0
}

// Weight is the share of the table width the column asks for, at least 1
func (c Column) Weight() int {
	return max(1, abs(c.Width))
}

// Filling is the width taken by leader and trailer
func (c Column) Filling() int {
	return len([]rune(c.Leader)) + len([]rune(c.Trailer))
}

func (c Column) String() string {
	return fmt.Sprintf("%d:%s, '%s', '%s' (%s)", c.Width, c.Alignment, c.Leader, c.Trailer, c.Name)
}

const inlinePrefix = "#inline#"

var (
	columnName  = regexp2.MustCompile(`\((.*?)\)`, regexp2.None)
	columnDir   = regexp2.MustCompile(`#(.*?)#$`, regexp2.None)
	columnTitle = regexp2.MustCompile(`\[(-?)(.*?)\]`, regexp2.None)
)

// ParseColumns parses a semicolon separated list of column specs.
//
// Unreadable widths do not stop parsing: the column gets width 1 and a
// TABLE_SPEC error listing the offending specs is returned alongside the
// columns.
func ParseColumns(spec string) ([]Column, error) {
	spec = strings.TrimPrefix(spec, inlinePrefix)

	patterns := strings.Split(spec, ";")
	for len(patterns) > 1 && patterns[len(patterns)-1] == "" {
		patterns = patterns[:len(patterns)-1]
	}

	var bad []string
	columns := make([]Column, 0, len(patterns))
	for _, pattern := range patterns {
		column, ok := parseColumn(pattern)
		if !ok {
			bad = append(bad, pattern)
		}
		columns = append(columns, column)
	}

	if len(bad) > 0 {
		return columns, errors.Newf(errors.ErrTableSpec, "could not read column widths in '%s'", strings.Join(bad, "', '")).
			WithDetail("spec", spec)
	}
	return columns, nil
}

func parseColumn(pattern string) (Column, bool) {
	column := Column{Width: 1, HideSplit: true}

	if m, _ := columnName.FindStringMatch(pattern); m != nil {
		column.Name = m.GroupByNumber(1).String()
		if dir, _ := columnDir.FindStringMatch(column.Name); dir != nil {
			column.ImageDir = dir.GroupByNumber(1).String()
			column.Name = string([]rune(column.Name)[:dir.Index])
		}
		pattern = cut(pattern, m)
	}

	if m, _ := columnTitle.FindStringMatch(pattern); m != nil {
		column.Title = m.GroupByNumber(2).String()
		column.HideSplit = m.GroupByNumber(1).Length == 0
		pattern = cut(pattern, m)
	}

	ok := true
	pos := strings.Index(pattern, ":")
	if pos > 0 {
		digits, sign := pattern[:pos], 1
		if strings.HasPrefix(digits, "f") {
			digits, sign = digits[1:], -1
		}
		if width, err := strconv.Atoi(digits); err == nil {
			column.Width = sign * width
		} else {
			ok = false
		}
	}

	parts := strings.Split(pattern[max(pos+1, 0):], ",")
	if alignment, err := buffer.ParseAlignment(parts[0]); err == nil {
		column.Alignment = alignment
	}
	if len(parts) >= 2 {
		column.Leader = parts[1]
	}
	if len(parts) >= 3 {
		column.Trailer = parts[2]
	}
	return column, ok
}

// cut removes a match from s. Match positions count runes.
func cut(s string, m *regexp2.Match) string {
	rs := []rune(s)
	return string(rs[:m.Index]) + string(rs[m.Index+m.Length:])
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
