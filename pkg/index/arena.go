package index

import "fmt"

// Arena is the master list of accepted items shared by the strategies.
// Strategies refer to items by their position in the arena so that a
// triangle stored in several places is kept once.
type Arena struct {
	items    []Item
	byID     map[int]int
	rejected int
}

func NewArena() *Arena {
	return &Arena{byID: make(map[int]int)}
}

// Add validates the item and appends it, returning its position. Rejected
// items are counted and leave the arena unchanged.
func (a *Arena) Add(item Item) (int, error) {
	if err := item.Validate(); err != nil {
		a.rejected++
		return -1, err
	}
	if _, ok := a.byID[item.ID]; ok {
		a.rejected++
		return -1, fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
	}
	pos := len(a.items)
	a.items = append(a.items, item)
	a.byID[item.ID] = pos
	return pos, nil
}

// Item returns the item stored at pos.
func (a *Arena) Item(pos int) Item {
	return a.items[pos]
}

// Items returns the accepted items in insertion order. The slice must not
// be modified.
func (a *Arena) Items() []Item {
	return a.items
}

func (a *Arena) Len() int {
	return len(a.items)
}

func (a *Arena) Rejected() int {
	return a.rejected
}
