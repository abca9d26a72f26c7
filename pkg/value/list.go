package value

import (
	"sort"
	"strings"
)

// ListItem identifies an entry of a list by its origin list and item name.
type ListItem struct {
	Origin string
	Item   string
}

// FullName returns "Origin.Item", or just Item when the origin is unknown.
func (i ListItem) FullName() string {
	if i.Origin == "" {
		return i.Item
	}
	return i.Origin + "." + i.Item
}

func (i ListItem) String() string { return i.FullName() }

// ListEntry pairs an item with its integer value.
type ListEntry struct {
	Item  ListItem
	Value int
}

// List is the payload of a ListValue: a set of items, each carrying an
// integer value.
type List struct {
	items map[ListItem]int
}

// NewList creates a list holding the given entries.
func NewList(entries ...ListEntry) *List {
	l := &List{items: make(map[ListItem]int, len(entries))}
	for _, e := range entries {
		l.items[e.Item] = e.Value
	}
	return l
}

// Add sets item to v.
func (l *List) Add(item ListItem, v int) {
	if l.items == nil {
		l.items = make(map[ListItem]int)
	}
	l.items[item] = v
}

func (l *List) Len() int { return len(l.items) }

func (l *List) Contains(item ListItem) bool {
	_, ok := l.items[item]
	return ok
}

// Value returns the integer value of item.
func (l *List) Value(item ListItem) (int, bool) {
	v, ok := l.items[item]
	return v, ok
}

// MaxItem returns the entry with the highest value. Ties go to the item
// sorted last by full name.
func (l *List) MaxItem() (ListEntry, bool) {
	items := l.Items()
	if len(items) == 0 {
		return ListEntry{}, false
	}
	return items[len(items)-1], true
}

// Items returns the entries ordered by value, then by full name.
func (l *List) Items() []ListEntry {
	out := make([]ListEntry, 0, len(l.items))
	for item, v := range l.items {
		out = append(out, ListEntry{Item: item, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return out[i].Item.FullName() < out[j].Item.FullName()
	})
	return out
}

// Clone returns an independent copy.
func (l *List) Clone() *List {
	out := &List{items: make(map[ListItem]int, len(l.items))}
	for k, v := range l.items {
		out.items[k] = v
	}
	return out
}

// String lists the item names in value order, separated by ", ".
func (l *List) String() string {
	items := l.Items()
	names := make([]string, len(items))
	for i, e := range items {
		names[i] = e.Item.Item
	}
	return strings.Join(names, ", ")
}
