package actions

import (
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/document"
	"github.com/arthur-debert/scribe/pkg/errors"
)

// Identity re-emits some of its inputs in a fixed order. Positive
// entries are 1-based argument indexes, negative entries 1-based
// optional indexes: {2, 1, -1} emits the second argument, the first
// argument, then the first optional.
type Identity struct {
	order []int
}

func NewIdentity(order ...int) *Identity {
	return &Identity{order: append([]int(nil), order...)}
}

// Ignore drops the command and everything in it
func Ignore() *Identity {
	return NewIdentity()
}

func (a *Identity) Execute(doc *document.Document, optionals, arguments []command.Value) error {
	if err := atLeast("identity", arguments, 1); err != nil {
		return err
	}

	for _, n := range a.order {
		var (
			values []command.Value
			i      int
		)
		switch {
		case n > 0:
			values, i = arguments, n-1
		case n < 0:
			values, i = optionals, -n-1
		default:
			return errors.New(errors.ErrInvalidUsage, "identity index 0 is not valid").
				WithDetail("action", "identity")
		}
		if i >= len(values) {
			return errors.Newf(errors.ErrInvalidUsage, "identity index %d is out of range", n).
				WithDetail("action", "identity")
		}
		if err := doc.Add(values[i]); err != nil {
			return err
		}
	}
	return nil
}
