// Package command holds the input tree rendered by documents.
//
// A Value is exactly one of Text, List or *Node. Nodes carry a command
// name plus ordered optional and positional arguments, each of which is
// again a Value. The neutral node name "command" groups values without
// styling them.
//
// Trees are usually built with the helpers in this package or parsed from
// the backslash markup understood by Parse:
//
//	some \bold{text} and \footnote[a]{a note}
//
// String renders any Value back to that markup.
package command
