package buffer

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Wrap breaks appended text into lines of a fixed visible width.
//
// After every append the unfinished line is cut at a newline that falls
// within the width, otherwise at the last space that fits, otherwise hard
// after exactly width visible characters. Spaces at a soft break are
// dropped. A width of 0 only cuts at newlines.
type Wrap struct {
	width     int
	ignore    *regexp2.Regexp
	alignment Alignment
	lines     []string
	current   []rune
}

// WrapOption configures a Wrap buffer
type WrapOption func(*Wrap)

// WithIgnore sets the pattern of character runs that do not count toward
// the visible width
func WithIgnore(re *regexp2.Regexp) WrapOption {
	return func(w *Wrap) {
		w.ignore = re
	}
}

// WithAlignment sets the initial alignment
func WithAlignment(a Alignment) WrapOption {
	return func(w *Wrap) {
		w.alignment = a
	}
}

// NewWrap creates a wrapping buffer of the given width
func NewWrap(width int, opts ...WrapOption) *Wrap {
	w := &Wrap{width: max(width, 0)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CompileIgnore compiles an ignore pattern with the regexp flavour used
// throughout scribe
func CompileIgnore(pattern string) (*regexp2.Regexp, error) {
	return regexp2.Compile(pattern, regexp2.None)
}

func (w *Wrap) Width() int {
	return w.width
}

// Ignore returns the ignore pattern, nil if none
func (w *Wrap) Ignore() *regexp2.Regexp {
	return w.ignore
}

// CloneEmpty returns an empty, left aligned buffer with the same ignore
// pattern
func (w *Wrap) CloneEmpty(width int) Buffer {
	return NewWrap(width, WithIgnore(w.ignore))
}

func (w *Wrap) SetAlignment(a Alignment) {
	w.alignment = a
}

func (w *Wrap) Alignment() Alignment {
	return w.alignment
}

func (w *Wrap) Append(text string) {
	if text == "" {
		return
	}
	w.current = append(w.current, []rune(text)...)
	for w.cut() {
	}
}

// EndLine appends a newline if the unfinished line has visible content
func (w *Wrap) EndLine() {
	if w.visible(w.current) > 0 {
		w.Append("\n")
	}
}

func (w *Wrap) Line() (string, bool) {
	if len(w.lines) == 0 {
		return "", false
	}
	line := w.lines[0]
	w.lines = w.lines[1:]
	return line, true
}

func (w *Wrap) Lines() string {
	result := w.Contents()
	w.lines = nil
	w.current = nil
	return result
}

func (w *Wrap) Contents() string {
	var sb strings.Builder
	for _, line := range w.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(string(w.current))
	return sb.String()
}

func (w *Wrap) HasMoreCompleteLines() bool {
	return len(w.lines) > 0
}

func (w *Wrap) HasMore() bool {
	return len(w.lines) > 0 || len(w.current) > 0
}

// Length returns the number of characters in text not matched by the
// ignore pattern
func (w *Wrap) Length(text string) int {
	return w.visible([]rune(text))
}

// SubstringLength returns how many leading characters of text hold its
// first n visible characters. Ignored runs directly following the n-th
// visible character are included.
func (w *Wrap) SubstringLength(text string, n int) int {
	return w.substringLength([]rune(text), n)
}

func (w *Wrap) cut() bool {
	if nl := indexRune(w.current, '\n'); nl >= 0 &&
		(w.width == 0 || w.visible(w.current[:nl]) <= w.width) {
		w.emit(nl, true, true, false)
		return true
	}
	if w.width == 0 || w.visible(w.current) <= w.width {
		return false
	}

	if pos := w.breakSpace(); pos >= 0 {
		w.emit(pos, false, false, false)
	} else {
		w.emit(w.substringLength(w.current, w.width), false, false, true)
	}
	return true
}

// breakSpace finds the last space whose preceding text fits the width
func (w *Wrap) breakSpace() int {
	spans := w.hidden(w.current)
	best := -1
	for i, r := range w.current {
		if r != ' ' {
			continue
		}
		if i-hiddenBefore(spans, i) > w.width {
			break
		}
		best = i
	}
	return best
}

func (w *Wrap) emit(pos int, paragraph, newline, forced bool) {
	if pos == 0 {
		w.lines = append(w.lines, "")
	} else {
		text := w.current[:pos]
		w.lines = append(w.lines, w.align(text, w.width-w.visible(text), paragraph))
	}

	end := pos
	if !forced {
		end++
	}
	if !newline {
		for end < len(w.current) && w.current[end] == ' ' {
			end++
		}
	}
	w.current = w.current[min(end, len(w.current)):]
}

func (w *Wrap) align(text []rune, missing int, paragraph bool) string {
	if missing <= 0 {
		return string(text)
	}

	switch {
	case w.alignment == Right:
		return spaces(missing) + string(text)
	case w.alignment == Center:
		return spaces(missing-missing/2) + string(text) + spaces(missing/2)
	case w.alignment == Block && !paragraph:
		if justified, ok := justify(text, missing); ok {
			return justified
		}
	}
	return string(text) + spaces(missing)
}

// justify widens the spaces of text by missing characters in total,
// starting from the middle space
func justify(text []rune, missing int) (string, bool) {
	count := 0
	for _, r := range text {
		if r == ' ' {
			count++
		}
	}
	if count == 0 {
		return "", false
	}

	adds := MiddleOut(missing, count)
	var sb strings.Builder
	gap := 0
	for _, r := range text {
		if r == ' ' {
			sb.WriteString(spaces(adds[gap]))
			gap++
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}

type span struct {
	start, end int
}

// hidden returns the rune ranges of rs matched by the ignore pattern
func (w *Wrap) hidden(rs []rune) []span {
	if w.ignore == nil || len(rs) == 0 {
		return nil
	}

	var spans []span
	m, err := w.ignore.FindRunesMatch(rs)
	for err == nil && m != nil {
		if m.Length > 0 {
			spans = append(spans, span{m.Index, m.Index + m.Length})
		}
		m, err = w.ignore.FindNextMatch(m)
	}
	return spans
}

func hiddenBefore(spans []span, i int) int {
	n := 0
	for _, s := range spans {
		if s.start >= i {
			break
		}
		n += min(s.end, i) - s.start
	}
	return n
}

func (w *Wrap) visible(rs []rune) int {
	return len(rs) - hiddenBefore(w.hidden(rs), len(rs))
}

func (w *Wrap) substringLength(rs []rune, n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(rs) {
		return len(rs)
	}

	spans := w.hidden(rs)
	if len(rs)-hiddenBefore(spans, len(rs)) <= n {
		return len(rs)
	}

	count, k := 0, 0
	for i := range rs {
		for k < len(spans) && spans[k].end <= i {
			k++
		}
		if k < len(spans) && spans[k].start <= i {
			continue
		}
		if count == n {
			return i
		}
		count++
	}
	return len(rs)
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
