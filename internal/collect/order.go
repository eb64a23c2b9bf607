package collect

import (
	"fmt"

	"github.com/jh3/codep/internal/entry"
)

// Order groups entries by kind.
type Order int

const (
	OrderUnchanged Order = iota
	OrderFilesFirst
	OrderDirsFirst
)

var orderNames = map[Order]string{
	OrderUnchanged:  "unchanged",
	OrderFilesFirst: "files-first",
	OrderDirsFirst:  "dirs-first",
}

func (o Order) String() string {
	return orderNames[o]
}

// ParseOrder parses "unchanged", "files-first" or "dirs-first".
func ParseOrder(s string) (Order, error) {
	for o, name := range orderNames {
		if name == s {
			return o, nil
		}
	}
	return OrderUnchanged, fmt.Errorf("invalid order %q (want unchanged, files-first or dirs-first)", s)
}

// Arrange stably partitions entries so the kind the order asks for comes
// first. OrderUnchanged returns entries as they are.
func Arrange(entries []entry.Resolved, o Order) []entry.Resolved {
	if o == OrderUnchanged {
		return entries
	}
	wantFiles := o == OrderFilesFirst

	first := make([]entry.Resolved, 0, len(entries))
	var second []entry.Resolved
	for _, e := range entries {
		if wantFiles == (e.Kind == entry.KindFile) {
			first = append(first, e)
		} else {
			second = append(second, e)
		}
	}
	return append(first, second...)
}
