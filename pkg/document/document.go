package document

import (
	"io"
	"unicode/utf8"

	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/logging"
	"github.com/spf13/afero"
)

// Footnote is a registered footnote, rendered after the main text
type Footnote struct {
	Marker string
	Body   command.Value
}

// state is shared between a document and all of its sub-documents
type state struct {
	registry   *Registry
	counters   *Counters
	errors     []error
	seen       map[string]bool
	footnotes  []Footnote
	footer     []command.Value
	attributes map[string]string
	dm         bool
}

// Document renders command trees into its buffer
type Document struct {
	buf   buffer.Buffer
	state *state
	sub   bool
}

// Option configures a new Document
type Option func(*state)

// WithDM sets the rendering-mode flag. The engine only passes it on.
func WithDM(dm bool) Option {
	return func(s *state) {
		s.dm = dm
	}
}

// WithCounters makes the document use an existing counter cell
func WithCounters(c *Counters) Option {
	return func(s *state) {
		s.counters = c
	}
}

// New creates a document rendering into buf with the actions of reg. A
// nil registry knows only the neutral grouping commands.
func New(reg *Registry, buf buffer.Buffer, opts ...Option) *Document {
	if reg == nil {
		reg = BaseRegistry()
	}
	if buf == nil {
		buf = buffer.NewSimple()
	}
	s := &state{
		registry:   reg,
		counters:   &Counters{},
		seen:       make(map[string]bool),
		attributes: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return &Document{buf: buf, state: s}
}

// Registry returns the action registry
func (d *Document) Registry() *Registry {
	return d.state.registry
}

// Buffer returns the document's own buffer
func (d *Document) Buffer() buffer.Buffer {
	return d.buf
}

// DM reports the rendering-mode flag
func (d *Document) DM() bool {
	return d.state.dm
}

// IsSub reports whether d is a sub-document
func (d *Document) IsSub() bool {
	return d.sub
}

// Sub creates a sub-document with an empty buffer of the same width
func (d *Document) Sub() *Document {
	return d.SubWidth(d.buf.Width())
}

// SubWidth creates a sub-document with an empty buffer of the given width
func (d *Document) SubWidth(width int) *Document {
	return &Document{buf: d.buf.CloneEmpty(width), state: d.state, sub: true}
}

// Convert resolves the action for a node. It reports false for silent
// commands, which must not be executed. Unknown names other than the
// neutral one are recorded and resolve to Passthrough.
func (d *Document) Convert(node *command.Node) (Action, bool) {
	action, found := d.state.registry.Lookup(node.Name)
	if found {
		if action == nil {
			return nil, false
		}
		return action, true
	}

	if node.Name != command.Neutral {
		logger := logging.GetLogger("document")
		logger.Error().Str("command", node.Name).Msg("Could not get action for command")
		d.AddError(errors.Newf(errors.ErrUnknownCommand, "no action for command '%s'", node.Name).
			WithDetail("name", node.Name))
	}
	return Passthrough, true
}

// Add renders a value into the document
func (d *Document) Add(v command.Value) error {
	switch v := v.(type) {
	case nil:
		return nil
	case command.Text:
		d.buf.Append(string(v))
	case command.List:
		for _, e := range v {
			if err := d.Add(e); err != nil {
				return err
			}
		}
	case *command.Node:
		if v == nil {
			return nil
		}
		action, ok := d.Convert(v)
		if !ok {
			return nil
		}
		return action.Execute(d, v.Optionals, v.Arguments)
	}
	return nil
}

// AddText appends literal text
func (d *Document) AddText(text string) {
	d.buf.Append(text)
}

// Render renders a value in a fresh sub-document and returns its text
func (d *Document) Render(v command.Value) (string, error) {
	sub := d.Sub()
	if err := sub.Add(v); err != nil {
		return "", err
	}
	return sub.Text(), nil
}

// Counter returns the general counter and advances it
func (d *Document) Counter() int {
	return d.state.counters.Next()
}

// FootnoteCounter advances the footnote counter and returns it
func (d *Document) FootnoteCounter() int {
	return d.state.counters.NextFootnote()
}

// Counters returns the shared counter cell
func (d *Document) Counters() *Counters {
	return d.state.counters
}

func (d *Document) AddFootnote(marker string, body command.Value) {
	d.state.footnotes = append(d.state.footnotes, Footnote{Marker: marker, Body: body})
}

// Footnotes returns a copy of the registered footnotes
func (d *Document) Footnotes() []Footnote {
	return append([]Footnote(nil), d.state.footnotes...)
}

func (d *Document) AddFooter(v command.Value) {
	d.state.footer = append(d.state.footer, v)
}

// Footer renders all footer fragments in a sub-document
func (d *Document) Footer() (string, error) {
	sub := d.Sub()
	for _, v := range d.state.footer {
		if err := sub.Add(v); err != nil {
			return "", err
		}
	}
	return sub.Text(), nil
}

// AddError records a diagnostic unless an equal one is already recorded
func (d *Document) AddError(err error) {
	if err == nil {
		return
	}
	key := errors.Key(err)
	if d.state.seen[key] {
		return
	}
	d.state.seen[key] = true
	d.state.errors = append(d.state.errors, err)
}

// Errors returns the recorded diagnostics in insertion order
func (d *Document) Errors() []error {
	return append([]error(nil), d.state.errors...)
}

func (d *Document) Attribute(name string) (string, bool) {
	v, ok := d.state.attributes[name]
	return v, ok
}

func (d *Document) SetAttribute(name, value string) {
	d.state.attributes[name] = value
}

// SetAlignment changes the alignment of the following lines. It has no
// effect on unbounded buffers.
func (d *Document) SetAlignment(a buffer.Alignment) {
	if lb, ok := d.buf.(buffer.LineBuffer); ok {
		lb.SetAlignment(a)
	}
}

func (d *Document) EndLine() {
	d.buf.EndLine()
}

// Line pops the next completed line of a line buffer
func (d *Document) Line() (string, bool) {
	if lb, ok := d.buf.(buffer.LineBuffer); ok {
		return lb.Line()
	}
	return "", false
}

// Length returns the visible length of text in this document
func (d *Document) Length(text string) int {
	if lb, ok := d.buf.(buffer.LineBuffer); ok {
		return lb.Length(text)
	}
	return utf8.RuneCountInString(text)
}

// Width is the buffer width, 0 when unbounded
func (d *Document) Width() int {
	return d.buf.Width()
}

// Text returns the buffer contents without footnotes
func (d *Document) Text() string {
	return d.buf.Contents()
}

// Contents returns the rendered text. The top-level document appends the
// footnote block, rendered with its own registry as a paragraph break, a
// short rule and a two column table of markers and bodies.
func (d *Document) Contents() (string, error) {
	text := d.buf.Contents()
	if d.sub || len(d.state.footnotes) == 0 {
		return text, nil
	}

	args := []command.Value{command.Text("f4:L;100:L")}
	for _, note := range d.state.footnotes {
		args = append(args, command.Text(note.Marker+")"), note.Body)
	}

	sub := d.Sub()
	for _, node := range []command.Value{
		command.New("par"),
		command.New("hrule").WithOptionals(command.Text("30")),
		command.New("table", args...).WithOptionals(command.Text("footnote")),
	} {
		if err := sub.Add(node); err != nil {
			return "", err
		}
	}
	return text + sub.Text(), nil
}

// Write writes the rendered text to w
func (d *Document) Write(w io.Writer) error {
	contents, err := d.Contents()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, contents); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write document")
	}
	return nil
}

// Save writes the rendered text as UTF-8 to path on fs
func (d *Document) Save(fs afero.Fs, path string) error {
	logger := logging.GetLogger("document")

	contents, err := d.Contents()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, []byte(contents), 0644); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Cannot write document")
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write to '%s'", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Msg("Wrote document")
	return nil
}
