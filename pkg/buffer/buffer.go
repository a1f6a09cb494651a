package buffer

import "strings"

// Buffer is a sink of rendered text
type Buffer interface {
	// Append adds text at the end of the buffer
	Append(text string)

	// EndLine terminates the current line unless it is already terminated
	EndLine()

	// Contents returns everything written so far
	Contents() string

	// CloneEmpty returns a new, empty buffer of the same kind. Buffers
	// without a width ignore the argument.
	CloneEmpty(width int) Buffer

	// Width is the line width, 0 for unbounded buffers
	Width() int
}

// LineBuffer is a Buffer that produces discrete, aligned lines
type LineBuffer interface {
	Buffer

	// Line pops the next completed line
	Line() (string, bool)

	// Lines drains all completed lines, each terminated by a newline,
	// followed by the unfinished line
	Lines() string

	SetAlignment(a Alignment)
	Alignment() Alignment

	// Length is the visible length of text
	Length(text string) int

	HasMoreCompleteLines() bool
	HasMore() bool
}

// Simple is an unbounded pass-through buffer
type Simple struct {
	sb strings.Builder
}

// NewSimple creates an empty pass-through buffer
func NewSimple() *Simple {
	return &Simple{}
}

func (s *Simple) Append(text string) {
	s.sb.WriteString(text)
}

// EndLine appends a newline unless the contents already end with one
func (s *Simple) EndLine() {
	if strings.HasSuffix(s.sb.String(), "\n") {
		return
	}
	s.sb.WriteByte('\n')
}

func (s *Simple) Contents() string {
	return s.sb.String()
}

func (s *Simple) CloneEmpty(int) Buffer {
	return NewSimple()
}

func (s *Simple) Width() int {
	return 0
}
