package formats

import (
	"strings"
	"sync"

	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/errors"
)

// Format names an output format
type Format string

const (
	Plain Format = "plain"
	ASCII Format = "ascii"
	ANSI  Format = "ansi"
	// Auto picks ANSI for terminals and ASCII otherwise. It is resolved by
	// the caller, New does not accept it.
	Auto Format = "auto"
)

// Formats lists the names accepted by ParseFormat
func Formats() []Format {
	return []Format{Plain, ASCII, ANSI, Auto}
}

// ParseFormat accepts a format name in any case
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown format '%s'", name).
		WithDetail("format", name)
}

// Settings select and size the document built by New
type Settings struct {
	Format Format
	Width  int
	// Ignore is the pattern of escape sequences ANSI documents do not
	// count toward the width. Empty means DefaultIgnore.
	Ignore string
}

// New builds an empty document for the given settings
func New(s Settings, opts ...document.Option) (*document.Document, error) {
	return NewWith(s, nil, opts...)
}

// NewWith builds an empty document for the given settings that renders
// with reg instead of the format's own registry. A nil reg means the
// format's registry.
func NewWith(s Settings, reg *document.Registry, opts ...document.Option) (*document.Document, error) {
	if reg == nil {
		var err error
		if reg, err = RegistryFor(s.Format); err != nil {
			return nil, err
		}
	}
	buf, err := newBuffer(s)
	if err != nil {
		return nil, err
	}
	return document.New(reg, buf, opts...), nil
}

// RegistryFor returns the action registry of a format
func RegistryFor(f Format) (*document.Registry, error) {
	switch f {
	case Plain:
		return document.BaseRegistry(), nil
	case ASCII:
		return ASCIIRegistry(), nil
	case ANSI:
		return ANSIRegistry(), nil
	default:
		return nil, unsupported(f)
	}
}

func newBuffer(s Settings) (buffer.Buffer, error) {
	switch s.Format {
	case Plain:
		return buffer.NewSimple(), nil
	case ASCII:
		if err := checkWidth(s.Width); err != nil {
			return nil, err
		}
		return buffer.NewWrap(s.Width), nil
	case ANSI:
		if err := checkWidth(s.Width); err != nil {
			return nil, err
		}
		ignore := s.Ignore
		if ignore == "" {
			ignore = DefaultIgnore
		}
		re, err := buffer.CompileIgnore(ignore)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid ignore pattern '%s'", ignore).
				WithDetail("pattern", ignore)
		}
		return buffer.NewWrap(s.Width, buffer.WithIgnore(re)), nil
	default:
		return nil, unsupported(s.Format)
	}
}

func unsupported(f Format) error {
	return errors.Newf(errors.ErrInvalidInput, "cannot create a document for format '%s'", f).
		WithDetail("format", string(f))
}

// NewPlain creates an unbounded document that knows only the neutral
// commands
func NewPlain(opts ...document.Option) *document.Document {
	return document.New(document.BaseRegistry(), buffer.NewSimple(), opts...)
}

// NewASCII creates a plain text document wrapping at width
func NewASCII(width int, opts ...document.Option) (*document.Document, error) {
	return New(Settings{Format: ASCII, Width: width}, opts...)
}

// NewANSI creates a terminal document wrapping at width
func NewANSI(width int, opts ...document.Option) (*document.Document, error) {
	return NewANSIWithIgnore(width, DefaultIgnore, opts...)
}

// NewANSIWithIgnore creates a terminal document with a custom pattern
// for the sequences that take no room on screen
func NewANSIWithIgnore(width int, ignore string, opts ...document.Option) (*document.Document, error) {
	return New(Settings{Format: ANSI, Width: width, Ignore: ignore}, opts...)
}

func checkWidth(width int) error {
	if width <= 0 {
		return errors.Newf(errors.ErrInvalidInput, "line width must be above zero, got %d", width).
			WithDetail("width", width)
	}
	return nil
}

const simpleWidth = 5000

var (
	simpleMu  sync.Mutex
	simpleDoc *document.Document
)

// SimpleConvert renders a value as plain ASCII text without practical
// line length limit. Counters and diagnostics are shared between calls.
func SimpleConvert(v command.Value) (string, error) {
	simpleMu.Lock()
	defer simpleMu.Unlock()

	if simpleDoc == nil {
		simpleDoc = document.New(ASCIIRegistry(), buffer.NewWrap(simpleWidth))
	}

	sub := simpleDoc.Sub()
	if err := sub.Add(v); err != nil {
		return "", err
	}
	return sub.Text(), nil
}
