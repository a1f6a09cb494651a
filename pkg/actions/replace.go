package actions

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/logging"
	"github.com/dlclark/regexp2"
)

// Replacement rewrites every match of a pattern. The replacement text
// may refer to groups as $1, $2 and so on.
type Replacement struct {
	pattern *regexp2.Regexp
	with    string
}

// NewReplacement compiles pattern into a replacement
func NewReplacement(pattern, with string) (Replacement, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return Replacement{}, errors.Wrapf(err, errors.ErrInvalidInput, "invalid replacement pattern '%s'", pattern).
			WithDetail("pattern", pattern)
	}
	return Replacement{pattern: re, with: with}, nil
}

// MustReplacement is NewReplacement for patterns known at compile time
func MustReplacement(pattern, with string) Replacement {
	r, err := NewReplacement(pattern, with)
	if err != nil {
		panic(err)
	}
	return r
}

// Apply replaces all matches in text. It reports false, leaving text
// alone, when the pattern does not match at all.
func (r Replacement) Apply(text string) (string, bool) {
	if ok, _ := r.pattern.MatchString(text); !ok {
		return text, false
	}
	result, err := r.pattern.Replace(text, r.with, -1, -1)
	if err != nil {
		return text, false
	}
	return result, true
}

func (r Replacement) String() string {
	return r.pattern.String() + " ==> " + r.with
}

// Replace renders its argument and applies the first replacement whose
// pattern matches
type Replace struct {
	replacements []Replacement
}

func NewReplace(replacements ...Replacement) *Replace {
	return &Replace{replacements: append([]Replacement(nil), replacements...)}
}

func (a *Replace) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := exactly("replace", arguments, 1); err != nil {
		return err
	}

	text, err := doc.Render(arguments[0])
	if err != nil {
		return err
	}

	for _, r := range a.replacements {
		if result, ok := r.Apply(text); ok {
			doc.AddText(result)
			return nil
		}
	}

	logger := logging.GetLogger("actions.replace")
	logger.Warn().
		Str("text", text).
		Str("replacements", a.String()).
		Msgf("no replacement for '%s'", text)
	doc.AddError(errors.Newf(errors.ErrNoReplacement, "no replacement for '%s'", text).
		WithDetail("text", text))
	doc.AddText(text)
	return nil
}

func (a *Replace) String() string {
	parts := make([]string, len(a.replacements))
	for i, r := range a.replacements {
		parts[i] = r.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
