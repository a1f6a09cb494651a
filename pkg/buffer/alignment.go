package buffer

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/scribe/pkg/errors"
)

// Alignment controls how completed lines are padded to the buffer width
type Alignment int

const (
	Left Alignment = iota
	Right
	Center
	Block
)

var alignmentNames = map[Alignment]string{
	Left:   "left",
	Right:  "right",
	Center: "center",
	Block:  "block",
}

func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("alignment(%d)", int(a))
}

// Short returns the one letter form used in table column specs
func (a Alignment) Short() string {
	return strings.ToUpper(a.String()[:1])
}

// ParseAlignment accepts the short (L, R, C, B) or long form, ignoring case
func ParseAlignment(s string) (Alignment, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range alignmentNames {
		if s == name || s == name[:1] {
			return a, nil
		}
	}
	return Left, errors.Newf(errors.ErrInvalidInput, "unknown alignment '%s'", s)
}

// MiddleOrder lists the indexes 0..n-1 starting from the middle and
// alternating outward, before the middle first: for n=5 it is 2 1 3 0 4.
func MiddleOrder(n int) []int {
	if n <= 0 {
		return nil
	}
	start := n / 2
	order := []int{start}
	for off := 1; len(order) < n; off++ {
		if start-off >= 0 {
			order = append(order, start-off)
		}
		if start+off < n {
			order = append(order, start+off)
		}
	}
	return order
}

// MiddleOut distributes total over slots in MiddleOrder, giving each slot
// the remaining amount divided by the remaining slots, rounded up. The
// result sums to total when total and slots are positive.
func MiddleOut(total, slots int) []int {
	out := make([]int, max(slots, 0))
	remaining := slots
	for _, i := range MiddleOrder(slots) {
		if total <= 0 {
			break
		}
		add := (total + remaining - 1) / remaining
		out[i] += add
		total -= add
		remaining--
	}
	return out
}
