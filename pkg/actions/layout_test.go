package actions_test

import (
	"testing"

	"github.com/arthur-debert/scribe/pkg/actions"
	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longItem = "third, now with some more text to make sure that word wrapping works as well, " +
	"otherwise we'd have to make another debugging session, which I don't really need..."

func TestAlign(t *testing.T) {
	short := "just a test for aligning"

	tests := []struct {
		alignment buffer.Alignment
		input     string
		expected  string
	}{
		{buffer.Left, short, "just a test for aligning                \n"},
		{buffer.Center, short, "        just a test for aligning        \n"},
		{buffer.Right, short, "                just a test for aligning\n"},
		{
			buffer.Block,
			"just a test for aligning, because this is for blocking the text has to be somewhat " +
				"larger this time, but I think this is enough to fill more than a single line",
			"just a test  for  aligning, because this\n" +
				"is  for  blocking  the  text  has  to be\n" +
				"somewhat larger this  time,  but I think\n" +
				"this  is  enough  to  fill  more  than a\n" +
				"single line                             \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.alignment.String(), func(t *testing.T) {
			out := run(t, actions.NewAlign(tt.alignment), wrapDoc(40), nil, command.Texts(tt.input))
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestHrule(t *testing.T) {
	doc := wrapDoc(20)
	action := actions.NewHrule()

	require.NoError(t, action.Execute(doc, nil, nil))
	require.NoError(t, action.Execute(doc, command.Texts("50"), nil))

	assert.Equal(t, "\n"+
		"--------------------\n"+
		"\n"+
		"----------          \n", doc.Text())

	err := action.Execute(wrapDoc(20), command.Texts("half"), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidUsage))
}

func TestList(t *testing.T) {
	out := run(t, actions.NewList(" + "), wrapDoc(40), nil,
		command.Texts("first", "second", longItem, "fourth"))

	assert.Equal(t, " + first                                \n"+
		" + second                               \n"+
		" + third, now with some more text to    \n"+
		"   make sure that word wrapping works as\n"+
		"   well, otherwise we'd have to make    \n"+
		"   another debugging session, which I   \n"+
		"   don't really need...                 \n"+
		" + fourth", out)
}

func TestMulti(t *testing.T) {
	t.Run("list_upper_pad", func(t *testing.T) {
		action := actions.NewMulti(actions.NewList("* "), actions.NewUpperCase(), actions.NewPad('~'))
		out := run(t, action, wrapDoc(40), nil, command.Texts("first", "second", longItem, "fourth"))

		assert.Equal(t, "~*~FIRST~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~\n"+
			"~~*~SECOND~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~\n"+
			"~~~*~THIRD,~NOW~WITH~SOME~MORE~TEXT~TO~M\n"+
			"AKE~~~SURE~THAT~WORD~WRAPPING~WORKS~AS~W\n"+
			"ELL,~~~OTHERWISE~WE'D~HAVE~TO~MAKE~ANOTH\n"+
			"ER~~~~~~DEBUGGING~SESSION,~WHICH~I~DON'T\n"+
			"~~~~~~~~~REALLY~NEED...~~~~~~~~~~~~~~~~~\n"+
			"~~~~~~~~*~FOURTH~", out)
	})

	t.Run("center_upper", func(t *testing.T) {
		action := actions.NewMulti(actions.NewAlign(buffer.Center), actions.NewUpperCase())
		out := run(t, action, wrapDoc(40), nil, command.Texts("some text"))
		assert.Equal(t, "                SOME TEXT               \n", out)
	})
}

func TestPattern(t *testing.T) {
	args := command.Texts("first", "second", "third")

	t.Run("arguments", func(t *testing.T) {
		action := actions.NewPattern(`\this is $0 a $1 \$2 $3, not again $2, $33`)
		out := run(t, action, plainDoc(), nil, args)
		assert.Equal(t, `\this is $0 a first \$2 third, not again second, $33`, out)
	})

	t.Run("optionals", func(t *testing.T) {
		action := actions.NewPattern(`this is [[%1]] a $1 \$2 $3, not again $2, [[*%2* ]]$33 %3`)

		out := run(t, action, plainDoc(), command.Texts("optional", "opt2", "opt3"), args)
		assert.Equal(t, `this is optional a first \$2 third, not again second, *opt2* $33 opt3`, out)

		out = run(t, action, plainDoc(), command.Texts("optional"), args)
		assert.Equal(t, `this is optional a first \$2 third, not again second, $33 `, out)
	})

	t.Run("escaped_optional", func(t *testing.T) {
		out := run(t, actions.NewPattern(`a \%1 b %1`), plainDoc(), command.Texts("x"), nil)
		assert.Equal(t, `a \%1 b x`, out)
	})

	t.Run("inserted_values_are_not_rescanned", func(t *testing.T) {
		out := run(t, actions.NewPattern("$1 $2"), plainDoc(), nil, command.Texts("$2 %1 [[", "b"))
		assert.Equal(t, "$2 %1 [[ b", out)
	})

	t.Run("raw_and_rendered", func(t *testing.T) {
		doc := docWith(nil, map[string]document.Action{"bold": actions.NewUpperCase()})
		bold := command.New("bold", command.Text("x"))
		out := run(t, actions.NewPattern("@1 / $1"), doc, nil, []command.Value{bold})
		assert.Equal(t, `\bold{x} / X`, out)
	})

	t.Run("count", func(t *testing.T) {
		doc := plainDoc()
		action := actions.NewPattern("$count. $1 ")
		run(t, action, doc, nil, command.Texts("a"))
		run(t, actions.NewPattern("no counter "), doc, nil, command.Texts("b"))
		out := run(t, action, doc, nil, command.Texts("c"))
		assert.Equal(t, "0. a no counter 2. c ", out, "every execution takes a counter value")
		assert.Equal(t, 3, doc.Counter())
	})

	t.Run("count_once_per_execution", func(t *testing.T) {
		doc := plainDoc()
		twice := actions.NewPattern("$count/$count ")
		run(t, twice, doc, nil, nil)
		run(t, actions.NewPattern("x "), doc, nil, nil)
		out := run(t, twice, doc, nil, nil)
		assert.Equal(t, "0/0 x 2/2 ", out)
		assert.Equal(t, 3, doc.Counter())
	})

	t.Run("html_attribute", func(t *testing.T) {
		action := actions.NewPattern(`<a title="$html(($1))">`)
		out := run(t, action, plainDoc(), nil, command.Texts(`say "hi" 'there'`))
		assert.Equal(t, `<a title="say &#34;hi&#34; &#39;there&#39;">`, out)
	})

	t.Run("commands", func(t *testing.T) {
		doc := docWith(nil, map[string]document.Action{"bold": actions.NewUpperCase()})
		out := run(t, actions.NewCommandPattern(`\bold{$1}`), doc, nil, command.Texts("guru"))
		assert.Equal(t, "GURU", out)
		assert.Empty(t, doc.Errors())
	})
}
