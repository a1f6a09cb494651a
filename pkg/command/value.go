package command

import "strings"

// Neutral is the name of the grouping node. Documents render it as a plain
// pass-through and never report it as unknown.
const Neutral = "command"

// Value is a node of the command tree: Text, List or *Node
type Value interface {
	isValue()
}

// Text is literal text
type Text string

// List is a sequence of values rendered one after the other
type List []Value

// Node is a named command with optional and positional arguments
type Node struct {
	Name      string
	Optionals []Value
	Arguments []Value
}

func (Text) isValue()  {}
func (List) isValue()  {}
func (*Node) isValue() {}

// New creates a node with the given positional arguments
func New(name string, args ...Value) *Node {
	return &Node{Name: name, Arguments: args}
}

// Wrap groups values into a neutral node
func Wrap(values ...Value) *Node {
	return New(Neutral, values...)
}

// WithOptionals appends optional arguments and returns the node
func (n *Node) WithOptionals(opts ...Value) *Node {
	n.Optionals = append(n.Optionals, opts...)
	return n
}

// Texts converts plain strings into Text values
func Texts(texts ...string) []Value {
	values := make([]Value, len(texts))
	for i, t := range texts {
		values[i] = Text(t)
	}
	return values
}

// String renders v in raw markup form. Neutral nodes render only their
// arguments; a node without any arguments is followed by a space so the
// result parses back to the same tree.
func String(v Value) string {
	var sb strings.Builder
	write(&sb, v)
	return sb.String()
}

func write(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil:
	case Text:
		sb.WriteString(string(v))
	case List:
		for _, e := range v {
			write(sb, e)
		}
	case *Node:
		if v == nil {
			return
		}
		if v.Name == Neutral {
			for _, a := range v.Arguments {
				write(sb, a)
			}
			return
		}
		sb.WriteByte('\\')
		sb.WriteString(v.Name)
		if len(v.Optionals) == 0 && len(v.Arguments) == 0 {
			sb.WriteByte(' ')
			return
		}
		for _, o := range v.Optionals {
			sb.WriteByte('[')
			write(sb, o)
			sb.WriteByte(']')
		}
		for _, a := range v.Arguments {
			sb.WriteByte('{')
			write(sb, a)
			sb.WriteByte('}')
		}
	}
}
