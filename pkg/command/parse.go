package command

import (
	"strings"
	"unicode"
)

const specials = "<>=!~*#$%@?+|"

// Parse reads backslash markup into a list of values.
//
// A command starts at an unescaped backslash followed by a letter, digit
// or one of <>=!~*#$%@?+| and is named by the run of letters and digits
// (or special characters) that follows. Optional arguments in square
// brackets come first, then arguments in braces; whitespace may separate
// the groups. Escaped brackets never open or close a group and stay in
// the text verbatim. A command without any group swallows one following
// whitespace character.
func Parse(text string) List {
	return parse([]rune(text))
}

// ParseValue parses text and collapses the result: a single element is
// returned as is, several are wrapped in a neutral node.
func ParseValue(text string) Value {
	return collapse(Parse(text))
}

func collapse(values List) Value {
	switch len(values) {
	case 0:
		return Text("")
	case 1:
		return values[0]
	default:
		return Wrap(values...)
	}
}

func parse(s []rune) List {
	var result List
	start := 0
	for start < len(s) {
		pos := findCommand(s, start)
		if pos < 0 {
			result = append(result, Text(string(s[start:])))
			break
		}
		if pos > start {
			result = append(result, Text(string(s[start:pos])))
		}

		end := pos + 1
		if isWord(s[end]) {
			for end < len(s) && isWord(s[end]) {
				end++
			}
		} else {
			for end < len(s) && isSpecial(s[end]) {
				end++
			}
		}
		node := &Node{Name: string(s[pos+1 : end])}

		var groups [][]rune
		groups, end = groupsAt(s, end, '[', ']')
		for _, g := range groups {
			node.Optionals = append(node.Optionals, collapse(parse(g)))
		}
		groups, end = groupsAt(s, end, '{', '}')
		for _, g := range groups {
			node.Arguments = append(node.Arguments, collapse(parse(g)))
		}

		if len(node.Optionals) == 0 && len(node.Arguments) == 0 &&
			end < len(s) && unicode.IsSpace(s[end]) {
			end++
		}

		result = append(result, node)
		start = end
	}
	return result
}

func findCommand(s []rune, from int) int {
	for i := from; i < len(s)-1; i++ {
		if s[i] != '\\' {
			continue
		}
		if i > 0 && s[i-1] == '\\' {
			continue
		}
		next := s[i+1]
		if next == '\\' {
			continue
		}
		if isWord(next) || isSpecial(next) {
			return i
		}
	}
	return -1
}

// groupsAt collects consecutive bracket groups starting at pos, allowing
// whitespace before each. It returns the group contents and the position
// after the last complete group.
func groupsAt(s []rune, pos int, open, close rune) ([][]rune, int) {
	var groups [][]rune
	for {
		i := pos
		for i < len(s) && unicode.IsSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != open {
			return groups, pos
		}
		end := matching(s, i, open, close)
		if end < 0 {
			return groups, pos
		}
		groups = append(groups, s[i+1:end])
		pos = end + 1
	}
}

func matching(s []rune, at int, open, close rune) int {
	depth := 0
	for i := at; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && (s[i+1] == open || s[i+1] == close) {
				i++
			}
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpecial(r rune) bool {
	return strings.ContainsRune(specials, r)
}
