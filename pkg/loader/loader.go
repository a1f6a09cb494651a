// Package loader reads command trees from markup, YAML or XML sources.
package loader

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/logging"
	"github.com/beevik/etree"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Input is the syntax of a source
type Input string

const (
	Markup Input = "markup"
	YAML   Input = "yaml"
	XML    Input = "xml"
	Auto   Input = "auto"
)

// ParseInput accepts an input syntax name in any case
func ParseInput(name string) (Input, error) {
	in := Input(strings.ToLower(strings.TrimSpace(name)))
	switch in {
	case Markup, YAML, XML, Auto:
		return in, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown input format '%s'", name).
		WithDetail("input", name)
}

// InputFor guesses the syntax from a file name, markup unless the
// extension says otherwise
func InputFor(path string) Input {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".xml":
		return XML
	default:
		return Markup
	}
}

// Load reads path and converts it to a command tree
func Load(fs afero.Fs, path string, in Input) (command.Value, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read '%s'", path).
			WithDetail("path", path)
	}
	if in == Auto || in == "" {
		in = InputFor(path)
	}
	return Decode(data, in)
}

// Decode converts source data of the given syntax to a command tree
func Decode(data []byte, in Input) (command.Value, error) {
	logger := logging.GetLogger("loader")
	logger.Debug().Str("input", string(in)).Int("bytes", len(data)).Msg("Decoding command tree")

	switch in {
	case Markup, Auto, "":
		return FromMarkup(string(data)), nil
	case YAML:
		return FromYAML(data)
	case XML:
		return FromXML(data)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown input format '%s'", in).
		WithDetail("input", string(in))
}

// FromMarkup parses markup text
func FromMarkup(text string) command.Value {
	return command.Parse(text)
}

// FromYAML converts a YAML document. Scalars are text, sequences are
// lists and mappings are commands with the keys name, optionals and
// arguments.
//
//	- "just "
//	- name: bold
//	  arguments: [some]
//	- " text"
func FromYAML(data []byte) (command.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "cannot parse YAML command tree")
	}
	if root.Kind == 0 {
		return command.Text(""), nil
	}
	return fromYAMLNode(&root)
}

func yamlError(n *yaml.Node, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrParse, "line %d: %s", n.Line, fmt.Sprintf(format, args...)).
		WithDetail("line", n.Line)
}

func fromYAMLNode(n *yaml.Node) (command.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return command.Text(""), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		return command.Text(n.Value), nil
	case yaml.SequenceNode:
		values, err := fromYAMLValues(n)
		if err != nil {
			return nil, err
		}
		return command.List(values), nil
	case yaml.MappingNode:
		return fromYAMLCommand(n)
	}
	return nil, yamlError(n, "unexpected YAML node")
}

func fromYAMLValues(n *yaml.Node) ([]command.Value, error) {
	if n.Kind != yaml.SequenceNode {
		v, err := fromYAMLNode(n)
		if err != nil {
			return nil, err
		}
		return []command.Value{v}, nil
	}

	values := make([]command.Value, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := fromYAMLNode(c)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func fromYAMLCommand(n *yaml.Node) (command.Value, error) {
	node := &command.Node{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		var err error
		switch key.Value {
		case "name":
			if value.Kind != yaml.ScalarNode || value.Value == "" {
				return nil, yamlError(value, "command name must be a non-empty string")
			}
			node.Name = value.Value
		case "optionals":
			node.Optionals, err = fromYAMLValues(value)
		case "arguments":
			node.Arguments, err = fromYAMLValues(value)
		default:
			return nil, yamlError(key, "unknown command key '%s'", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if node.Name == "" {
		return nil, yamlError(n, "command without a name")
	}
	return node, nil
}

// FromXML converts an XML document. Every element is a command named
// after its tag. <opt> children hold optionals; if an element has <arg>
// children each of them is one argument, otherwise all remaining content
// is its single argument. Whitespace between elements that contains a
// line break is dropped.
//
//	<command>just <bold>some</bold> text</command>
func FromXML(data []byte) (command.Value, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "cannot parse XML command tree")
	}
	root := doc.Root()
	if root == nil {
		return command.Text(""), nil
	}
	return fromElement(root), nil
}

const (
	optTag = "opt"
	argTag = "arg"
)

func fromElement(el *etree.Element) *command.Node {
	node := &command.Node{Name: el.Tag}

	var content []command.Value
	explicit := false
	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.Element:
			switch t.Tag {
			case optTag:
				node.Optionals = append(node.Optionals, fromContent(t))
			case argTag:
				explicit = true
				node.Arguments = append(node.Arguments, fromContent(t))
			default:
				content = append(content, fromElement(t))
			}
		case *etree.CharData:
			if text := t.Data; !ignorable(text) {
				content = append(content, command.Text(text))
			}
		}
	}

	if !explicit && len(content) > 0 {
		node.Arguments = []command.Value{collapse(content)}
	}
	return node
}

// fromContent converts the children of an <opt> or <arg> element
func fromContent(el *etree.Element) command.Value {
	var content []command.Value
	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.Element:
			content = append(content, fromElement(t))
		case *etree.CharData:
			if !ignorable(t.Data) {
				content = append(content, command.Text(t.Data))
			}
		}
	}
	return collapse(content)
}

func ignorable(text string) bool {
	return strings.TrimSpace(text) == "" && strings.Contains(text, "\n")
}

func collapse(values []command.Value) command.Value {
	switch len(values) {
	case 0:
		return command.Text("")
	case 1:
		return values[0]
	default:
		return command.List(values)
	}
}

// Encode writes a tree back in the given syntax. Markup is the raw form
// of command.String; YAML uses the shape FromYAML reads.
func Encode(v command.Value, in Input) ([]byte, error) {
	switch in {
	case Markup, Auto, "":
		return []byte(command.String(v)), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(toYAML(v)); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode YAML command tree")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode YAML command tree")
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "cannot encode command trees as '%s'", in).
		WithDetail("input", string(in))
}

func toYAML(v command.Value) interface{} {
	switch v := v.(type) {
	case command.Text:
		return string(v)
	case command.List:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = toYAML(e)
		}
		return out
	case *command.Node:
		m := map[string]interface{}{"name": v.Name}
		if len(v.Optionals) > 0 {
			m["optionals"] = toYAML(command.List(v.Optionals))
		}
		if len(v.Arguments) > 0 {
			m["arguments"] = toYAML(command.List(v.Arguments))
		}
		return m
	}
	return ""
}
