package formats

import (
	"sync"

	"github.com/arthur-debert/scribe/pkg/actions"
	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/registry"
)

// ASCIIRegistry returns the actions of the plain text format. The
// registry is built once and shared.
var ASCIIRegistry = sync.OnceValue(buildASCII)

var sizes = []string{
	"tiny", "footnotesize", "scriptsize", "small", "normalsize",
	"large", "larger", "largest", "huge", "huger",
}

func buildASCII() *document.Registry {
	b := registry.Extend(document.BaseRegistry())
	reg := func(name string, action document.Action) {
		registry.MustRegister(b, name, action)
	}

	upper := actions.NewUpperCase()
	reg("bold", upper)
	reg("emph", upper)

	reg("left", actions.NewAlign(buffer.Left))
	reg("right", actions.NewAlign(buffer.Right))
	reg("center", actions.NewAlign(buffer.Center))
	reg("block", actions.NewAlign(buffer.Block))

	first := actions.NewIdentity(1)
	for _, name := range sizes {
		reg(name, first)
	}
	for _, name := range []string{"link", "nopictures", "window", "grouped"} {
		reg(name, first)
	}
	reg("editable", actions.NewIdentity(3))

	second := actions.NewIdentity(2)
	for _, name := range []string{"id", "divider", "span"} {
		reg(name, second)
	}

	registry.MustSilence(b,
		"icon", "image", "picture", "imageLink", "highlight",
		"navigation", "color", "columns", "footer")

	reg("table", actions.NewTable())
	reg("title",
		actions.NewMulti(actions.NewAlign(buffer.Center), upper))
	reg("subtitle", actions.NewAlign(buffer.Center))
	reg("textblock", actions.NewAlign(buffer.Block))

	reg("hat", accents(hat))
	reg("umlaut", accents(umlaut))
	reg("acute", accents(acute))
	reg("grave", accents(grave))

	reg("par", actions.NewDelimiter("\n\n", ""))
	reg("linebreak", actions.NewDelimiter("\n", ""))
	reg("list", actions.NewList(" * "))
	reg("footnote", actions.NewFootnote())
	reg("hrule", actions.NewHrule())

	reg("frac", actions.NewPattern("[[%1 ]]$1/$2"))
	reg("super", actions.NewPattern("($1)"))
	reg("sub", actions.NewPattern("($1)"))
	reg("count", actions.NewPattern("$1 (max $2) $3"))
	reg("less", actions.NewPattern("<"))
	reg("greater", actions.NewPattern(">"))
	reg("lessequal", actions.NewPattern("<="))
	reg("greaterequal", actions.NewPattern(">="))
	reg("value",
		actions.NewCommandPattern(`\table{f15:l;1:l}{$2}{$3}`))

	return b.Build()
}

// accent tables, in lookup order: the first letter found in the
// argument is the one that gets the accent
var (
	hat = [][2]string{
		{"u", "û"}, {"U", "Û"}, {"o", "ô"}, {"O", "Ô"},
		{"a", "â"}, {"A", "Â"}, {"i", "î"}, {"I", "Î"},
	}
	umlaut = [][2]string{
		{"a", "ä"}, {"A", "Ä"}, {"o", "ö"}, {"O", "Ö"},
		{"u", "ü"}, {"U", "Ü"}, {"i", "ï"}, {"I", "Ï"},
	}
	acute = [][2]string{
		{"e", "é"}, {"E", "É"}, {"u", "ú"}, {"U", "Ú"}, {"a", "á"},
		{"A", "Á"}, {"o", "ó"}, {"O", "Ó"}, {"i", "í"}, {"I", "Í"},
	}
	grave = [][2]string{
		{"e", "è"}, {"E", "È"}, {"u", "ù"}, {"U", "Ù"}, {"a", "à"},
		{"A", "À"}, {"o", "ò"}, {"O", "Ò"}, {"i", "ì"}, {"I", "Ì"},
	}
)

func accents(table [][2]string) *actions.Replace {
	replacements := make([]actions.Replacement, len(table))
	for i, pair := range table {
		replacements[i] = actions.MustReplacement(pair[0], pair[1])
	}
	return actions.NewReplace(replacements...)
}
