package actions

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/dlclark/regexp2"
)

// Pattern fills a template with the command's inputs.
//
//	%N          the N-th optional, rendered
//	[[ ... ]]   dropped as a whole if it refers to a missing optional
//	$N          the N-th argument, rendered
//	@N          the N-th argument in raw markup form
//	$count      the document's counter, read once per execution
//	$html((x))  x with quotes encoded as character references
//
// Indexes are 1-based. A reference preceded by a backslash is left
// alone, as are argument references past the last argument. Inserted
// values are never scanned for references themselves.
type Pattern struct {
	template string
	commands bool
}

// NewPattern creates a pattern whose result is added as text
func NewPattern(template string) *Pattern {
	return &Pattern{template: template}
}

// NewCommandPattern creates a pattern whose result is parsed as markup
// before it is added
func NewCommandPattern(template string) *Pattern {
	return &Pattern{template: template, commands: true}
}

// Template returns the template text
func (a *Pattern) Template() string {
	return a.template
}

var (
	optionalRef   = regexp2.MustCompile(`(?<!\\)%(\d+)`, regexp2.None)
	optionalBlock = regexp2.MustCompile(`\[\[[^\]]*?(?<!\\)%\d[^\]]*?\]\]`, regexp2.None)
	argumentRef   = regexp2.MustCompile(`(?<!\\)([$@])(\d+)`, regexp2.None)
	countRef      = regexp2.MustCompile(`(?<!\\)\$count\b`, regexp2.None)
	htmlRef       = regexp2.MustCompile(`(?<!\\)\$html\(\((.*?)\)\)`, regexp2.Singleline)
	slotRef       = regexp2.MustCompile(slotOpen+`(\d+)`+slotClose, regexp2.None)

	htmlQuotes = strings.NewReplacer(`"`, "&#34;", `'`, "&#39;")
)

const (
	slotOpen  = "\uE000"
	slotClose = "\uE001"
)

// slots holds inserted values while the template is still being
// scanned. Each value is represented by a private-use placeholder.
type slots []string

func (s *slots) put(value string) string {
	*s = append(*s, value)
	return slotOpen + strconv.Itoa(len(*s)-1) + slotClose
}

func (s slots) expand(text string) string {
	result, err := slotRef.ReplaceFunc(text, func(m regexp2.Match) string {
		i, _ := strconv.Atoi(m.GroupByNumber(1).String())
		if i < len(s) {
			return s[i]
		}
		return m.String()
	}, -1, -1)
	if err != nil {
		return text
	}
	return result
}

func (a *Pattern) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	rendered := func(values []command.Value) ([]string, error) {
		texts := make([]string, len(values))
		for i, v := range values {
			text, err := doc.Render(v)
			if err != nil {
				return nil, err
			}
			texts[i] = text
		}
		return texts, nil
	}

	opts, err := rendered(optionals)
	if err != nil {
		return err
	}
	args, err := rendered(arguments)
	if err != nil {
		return err
	}

	// Every execution takes one counter value, used by all $count
	count := strconv.Itoa(doc.Counter())

	var values slots
	result := replace(optionalRef, a.template, func(m regexp2.Match) string {
		if n, ok := index(m.GroupByNumber(1).String(), len(opts)); ok {
			return values.put(opts[n])
		}
		return m.String()
	})
	result = replace(optionalBlock, result, func(regexp2.Match) string { return "" })
	result = replace(optionalRef, result, func(regexp2.Match) string { return "" })
	result = strings.ReplaceAll(strings.ReplaceAll(result, "[[", ""), "]]", "")

	result = replace(argumentRef, result, func(m regexp2.Match) string {
		n, ok := index(m.GroupByNumber(2).String(), len(args))
		if !ok {
			return m.String()
		}
		if m.GroupByNumber(1).String() == "@" {
			return values.put(command.String(arguments[n]))
		}
		return values.put(args[n])
	})

	result = replace(countRef, result, func(regexp2.Match) string {
		return values.put(count)
	})
	result = replace(htmlRef, result, func(m regexp2.Match) string {
		return values.put(htmlQuotes.Replace(values.expand(m.GroupByNumber(1).String())))
	})

	result = values.expand(result)
	if a.commands {
		return doc.Add(command.Parse(result))
	}
	doc.AddText(result)
	return nil
}

// index converts a 1-based reference into a slice index
func index(digits string, n int) (int, bool) {
	i, err := strconv.Atoi(digits)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

func replace(re *regexp2.Regexp, text string, eval regexp2.MatchEvaluator) string {
	result, err := re.ReplaceFunc(text, eval, -1, -1)
	if err != nil {
		return text
	}
	return result
}
