package definitions

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/scribe/pkg/actions"
	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/logging"
	"github.com/arthur-debert/scribe/pkg/registry"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var log = logging.GetLogger("definitions")

// Kinds of definable actions
const (
	KindPattern   = "pattern"
	KindDelimiter = "delimiter"
	KindReplace   = "replace"
	KindIdentity  = "identity"
	KindList      = "list"
	KindAlign     = "align"
	KindPad       = "pad"
	KindUpper     = "upper"
	KindAlias     = "alias"
	KindSilent    = "silent"
	KindRemove    = "remove"
)

// Format is the syntax of a definitions file
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Definition describes one user-defined action
type Definition struct {
	Name string `toml:"name" yaml:"name"`
	Kind string `toml:"kind" yaml:"kind"`

	// pattern
	Template string `toml:"template" yaml:"template"`
	Commands bool   `toml:"commands" yaml:"commands"`

	// delimiter
	Start    string   `toml:"start" yaml:"start"`
	End      string   `toml:"end" yaml:"end"`
	ArgStart []string `toml:"arg_start" yaml:"arg_start"`
	ArgEnd   []string `toml:"arg_end" yaml:"arg_end"`
	OptStart []string `toml:"opt_start" yaml:"opt_start"`
	OptEnd   []string `toml:"opt_end" yaml:"opt_end"`

	// replace
	Replacements []Replacement `toml:"replacements" yaml:"replacements"`

	// identity
	Order []int `toml:"order" yaml:"order"`

	// list
	Bullet string `toml:"bullet" yaml:"bullet"`

	// align
	Alignment string `toml:"alignment" yaml:"alignment"`

	// pad
	Char string `toml:"char" yaml:"char"`

	// alias
	Of string `toml:"of" yaml:"of"`
}

// Replacement is one rule of a replace definition
type Replacement struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
	With    string `toml:"with" yaml:"with"`
}

type file struct {
	Actions []Definition `toml:"action" yaml:"action"`
}

// FormatFor picks the file format from the extension of path
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", errors.Newf(errors.ErrDefinitionLoad, "cannot tell the format of '%s'", path).
			WithDetail("path", path)
	}
}

// Load reads and parses a definitions file
func Load(fs afero.Fs, path string) ([]Definition, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read definitions '%s'", path).
			WithDetail("path", path)
	}

	defs, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("actions", len(defs)).
		Msg("Definitions loaded")
	return defs, nil
}

// Parse decodes definitions. Unknown keys are rejected.
func Parse(data []byte, format Format) ([]Definition, error) {
	var f file
	switch format {
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, errors.ErrDefinitionLoad, "cannot parse TOML definitions")
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrDefinitionLoad, "cannot parse YAML definitions")
		}
	default:
		return nil, errors.Newf(errors.ErrDefinitionLoad, "unknown definitions format '%s'", format)
	}

	for _, def := range f.Actions {
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Actions, nil
}

func invalid(def Definition, format string, args ...interface{}) *errors.ScribeError {
	return errors.Newf(errors.ErrDefinitionInvalid, format, args...).
		WithDetail("action", def.Name)
}

// Validate checks that a definition has what its kind needs
func (d Definition) Validate() error {
	if d.Name == "" {
		return invalid(d, "action without a name")
	}

	switch d.Kind {
	case KindPattern:
		if d.Template == "" {
			return invalid(d, "pattern action '%s' needs a template", d.Name)
		}
	case KindReplace:
		if len(d.Replacements) == 0 {
			return invalid(d, "replace action '%s' needs replacements", d.Name)
		}
	case KindIdentity:
		for _, n := range d.Order {
			if n == 0 {
				return invalid(d, "identity action '%s' cannot use index 0", d.Name)
			}
		}
	case KindAlign:
		if _, err := buffer.ParseAlignment(d.Alignment); err != nil {
			return invalid(d, "align action '%s' has unknown alignment '%s'", d.Name, d.Alignment)
		}
	case KindPad:
		if utf8.RuneCountInString(d.Char) != 1 {
			return invalid(d, "pad action '%s' needs a single character, got '%s'", d.Name, d.Char)
		}
	case KindAlias:
		if d.Of == "" {
			return invalid(d, "alias action '%s' needs a target", d.Name)
		}
	case KindDelimiter, KindList, KindUpper, KindSilent, KindRemove:
	default:
		return invalid(d, "action '%s' has unknown kind '%s'", d.Name, d.Kind)
	}
	return nil
}

// Action builds the action of a definition. Aliases are resolved in
// base. Silent and remove definitions have no action and yield nil.
func (d Definition) Action(base *document.Registry) (document.Action, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	switch d.Kind {
	case KindPattern:
		if d.Commands {
			return actions.NewCommandPattern(d.Template), nil
		}
		return actions.NewPattern(d.Template), nil
	case KindDelimiter:
		return actions.NewDelimiter(d.Start, d.End).
			WithArguments(d.ArgStart, d.ArgEnd).
			WithOptionals(d.OptStart, d.OptEnd), nil
	case KindReplace:
		replacements := make([]actions.Replacement, 0, len(d.Replacements))
		for _, r := range d.Replacements {
			replacement, err := actions.NewReplacement(r.Pattern, r.With)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrDefinitionInvalid, "replace action '%s' has an invalid pattern", d.Name).
					WithDetail("action", d.Name)
			}
			replacements = append(replacements, replacement)
		}
		return actions.NewReplace(replacements...), nil
	case KindIdentity:
		return actions.NewIdentity(d.Order...), nil
	case KindList:
		return actions.NewList(d.Bullet), nil
	case KindAlign:
		alignment, _ := buffer.ParseAlignment(d.Alignment)
		return actions.NewAlign(alignment), nil
	case KindPad:
		r, _ := utf8.DecodeRuneInString(d.Char)
		return actions.NewPad(r), nil
	case KindUpper:
		return actions.NewUpperCase(), nil
	case KindAlias:
		if base == nil || !base.Has(d.Of) {
			return nil, invalid(d, "alias action '%s' refers to unknown action '%s'", d.Name, d.Of)
		}
		action, _ := base.Lookup(d.Of)
		return action, nil
	}
	return nil, nil
}

// Extend returns a registry holding base plus the definitions. A
// definition replaces a base action of the same name; two definitions
// of the same name are an error.
func Extend(base *document.Registry, defs []Definition) (*document.Registry, error) {
	b := registry.Extend(base)

	for _, def := range defs {
		action, err := def.Action(base)
		if err != nil {
			return nil, err
		}

		switch {
		case def.Kind == KindRemove:
			err = b.Remove(def.Name)
		case def.Kind == KindSilent || (def.Kind == KindAlias && action == nil):
			err = b.Silence(def.Name)
		default:
			err = b.Register(def.Name, action)
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDefinitionInvalid, "cannot define action '%s'", def.Name).
				WithDetail("action", def.Name)
		}
	}

	reg := b.Build()
	log.Info().
		Int("definitions", len(defs)).
		Int("actions", reg.Count()).
		Msg("Extended registry with definitions")
	return reg, nil
}
