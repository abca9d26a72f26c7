package content

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/aretw0/inkling/pkg/path"
)

// Count flag bits as packed by CountFlags.
const (
	FlagVisits         = 1
	FlagTurns          = 2
	FlagCountStartOnly = 4
)

// Container is an ordered, optionally named node holding child objects.
//
// Positional children live in Content. Children with a valid name are also
// registered in NamedContent; entries registered there without a position are
// the named-only content. A Container must not be copied after first use.
type Container struct {
	Base

	name         string
	content      []Object
	namedContent map[string]Nameable

	visitsShouldBeCounted    bool
	turnIndexShouldBeCounted bool
	countingAtStartOnly      bool

	// firstLeaf memoises InternalPathToFirstLeafContent. Mutations of this
	// container or any descendant clear it.
	firstLeaf atomic.Pointer[path.Path]
}

// NewContainer creates an empty, unparented container. An empty name leaves
// it anonymous. Names that path.IsValidName rejects are refused when the
// container is attached; use SetName to check one up front.
func NewContainer(name string) *Container {
	return &Container{
		name:         name,
		namedContent: make(map[string]Nameable),
	}
}

// Name returns the container's name, "" when anonymous.
func (c *Container) Name() string { return c.name }

// SetName renames the container. Attached containers cannot be renamed since
// their parent indexes them by name. A non-empty name must pass
// path.IsValidName.
func (c *Container) SetName(name string) error {
	if c.parent != nil {
		return c.mutationError("SetName", ErrAlreadyParented)
	}
	if name != "" && !path.IsValidName(name) {
		return c.mutationError("SetName", fmt.Errorf("%q: %w", name, ErrInvalidName))
	}
	c.name = name
	return nil
}

// Content returns a copy of the positional children.
func (c *Container) Content() []Object {
	out := make([]Object, len(c.content))
	copy(out, c.content)
	return out
}

// Len returns the number of positional children.
func (c *Container) Len() int { return len(c.content) }

// NamedContent returns a copy of the name registry, including positional
// children that carry a name.
func (c *Container) NamedContent() map[string]Nameable {
	out := make(map[string]Nameable, len(c.namedContent))
	for k, v := range c.namedContent {
		out[k] = v
	}
	return out
}

// NamedOnlyContent returns the named entries that have no position in
// Content. It returns nil when there are none.
func (c *Container) NamedOnlyContent() map[string]Nameable {
	var out map[string]Nameable
	positional := c.positionalSet()
	for name, obj := range c.namedContent {
		if _, ok := positional[obj]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]Nameable)
		}
		out[name] = obj
	}
	return out
}

// SetNamedOnlyContent replaces the named-only entries with the given objects,
// each registered under its own name. The replacement is validated first, so
// a failing call leaves the container unchanged.
func (c *Container) SetNamedOnlyContent(entries map[string]Nameable) error {
	const op = "SetNamedOnlyContent"

	current := c.NamedOnlyContent()
	positional := c.positionalSet()
	seen := make(map[string]bool, len(entries))

	for _, key := range sortedKeys(entries) {
		obj := entries[key]
		if obj == nil {
			return c.mutationError(op, fmt.Errorf("entry %q: %w", key, ErrNilObject))
		}
		if !HasValidName(obj) {
			return c.mutationError(op, fmt.Errorf("entry %q: %w", key, ErrInvalidName))
		}
		if err := checkName(obj); err != nil {
			return c.mutationError(op, fmt.Errorf("entry %q: %w", key, err))
		}
		name := obj.Name()
		if p := obj.Parent(); p != nil && !(p == c && current[name] == obj) {
			return c.mutationError(op, fmt.Errorf("entry %q: %w", key, ErrAlreadyParented))
		}
		if seen[name] {
			return c.mutationError(op, fmt.Errorf("entry %q: %w", key, ErrDuplicateName))
		}
		if existing, ok := c.namedContent[name]; ok {
			if _, isPositional := positional[existing]; isPositional {
				return c.mutationError(op, fmt.Errorf("entry %q: %w", key, ErrDuplicateName))
			}
		}
		if err := c.checkCycle(obj); err != nil {
			return c.mutationError(op, fmt.Errorf("entry %q: %w", key, err))
		}
		seen[name] = true
	}

	for name, obj := range current {
		delete(c.namedContent, name)
		obj.base().detach()
	}
	for _, key := range sortedKeys(entries) {
		obj := entries[key]
		obj.base().attach(c, obj)
		c.register(obj)
	}
	c.invalidate()
	return nil
}

// AddContent appends objs in order. Each object must be unparented and, when
// named, its name must be free in this container. Objects before the first
// failing one stay attached.
func (c *Container) AddContent(objs ...Object) error {
	for i, obj := range objs {
		if err := c.insert(obj, len(c.content)); err != nil {
			if len(objs) > 1 {
				err = fmt.Errorf("item %d: %w", i, err)
			}
			return c.mutationError("AddContent", err)
		}
	}
	return nil
}

// InsertContent places obj at index, shifting later children. index must be
// within [0, Len()].
func (c *Container) InsertContent(obj Object, index int) error {
	if err := c.insert(obj, index); err != nil {
		return c.mutationError("InsertContent", err)
	}
	return nil
}

// TryAddNamedContent attaches obj as named-only content when it is Nameable
// with a valid name. Other objects are ignored.
func (c *Container) TryAddNamedContent(obj Object) error {
	n, ok := obj.(Nameable)
	if !ok || !HasValidName(n) {
		return nil
	}
	return c.AddToNamedContentOnly(n)
}

// AddToNamedContentOnly registers n by name without giving it a position.
func (c *Container) AddToNamedContentOnly(n Nameable) error {
	const op = "AddToNamedContentOnly"
	if n == nil {
		return c.mutationError(op, ErrNilObject)
	}
	if !HasValidName(n) {
		return c.mutationError(op, ErrInvalidName)
	}
	if err := checkName(n); err != nil {
		return c.mutationError(op, err)
	}
	if n.Parent() != nil {
		return c.mutationError(op, ErrAlreadyParented)
	}
	if _, exists := c.namedContent[n.Name()]; exists {
		return c.mutationError(op, fmt.Errorf("%q: %w", n.Name(), ErrDuplicateName))
	}
	if err := c.checkCycle(n); err != nil {
		return c.mutationError(op, err)
	}

	n.base().attach(c, n)
	c.register(n)
	c.invalidate()
	return nil
}

// AddContentsOfContainer moves other's positional children to the end of this
// container, keeping their order and name registrations. other's named-only
// entries stay where they are. Nothing changes when the move is rejected.
func (c *Container) AddContentsOfContainer(other *Container) error {
	const op = "AddContentsOfContainer"
	if other == nil {
		return c.mutationError(op, ErrNilObject)
	}
	if other == c {
		return c.mutationError(op, ErrCycle)
	}

	for i, obj := range other.content {
		if err := c.checkCycle(obj); err != nil {
			return c.mutationError(op, fmt.Errorf("item %d: %w", i, err))
		}
		if n, ok := obj.(Nameable); ok && HasValidName(n) {
			if _, exists := c.namedContent[n.Name()]; exists {
				return c.mutationError(op, fmt.Errorf("item %d %q: %w", i, n.Name(), ErrDuplicateName))
			}
		}
	}

	moved := other.content
	other.content = nil
	for _, obj := range moved {
		if n, ok := obj.(Nameable); ok && HasValidName(n) {
			delete(other.namedContent, n.Name())
		}
		obj.base().detach()
	}
	other.invalidate()

	for _, obj := range moved {
		c.attachAt(obj, len(c.content))
	}
	c.invalidate()
	return nil
}

// ContentWithPathComponent resolves a single component against this
// container: indices address Content, names address NamedContent and the
// parent marker yields the parent.
func (c *Container) ContentWithPathComponent(comp path.Component) (Object, bool) {
	switch {
	case comp.IsIndex():
		i := comp.Index()
		if i >= len(c.content) {
			return nil, false
		}
		return c.content[i], true
	case comp.IsParent():
		if c.parent == nil {
			return nil, false
		}
		return c.parent, true
	default:
		obj, ok := c.namedContent[comp.Name()]
		if !ok {
			return nil, false
		}
		return obj, true
	}
}

// ContentAtPath resolves every component of p starting at this container.
// The relativity of p is ignored.
func (c *Container) ContentAtPath(p path.Path) SearchResult {
	return c.ContentAtPartialPath(p, 0, -1)
}

// ContentAtPartialPath resolves components [start, end) of p. A negative end
// or one past the path length means the whole remainder. When a component
// cannot be resolved, the deepest object reached is returned as an
// approximate result.
func (c *Container) ContentAtPartialPath(p path.Path, start, end int) SearchResult {
	if start < 0 {
		start = 0
	}
	if end < 0 || end > p.Len() {
		end = p.Len()
	}

	result := SearchResult{Obj: c}
	current := c
	for i := start; i < end; i++ {
		if current == nil {
			result.Approximate = true
			break
		}
		found, ok := current.ContentWithPathComponent(p.Component(i))
		if !ok {
			result.Approximate = true
			break
		}
		result.Obj = found
		current, _ = found.(*Container)
	}
	return result
}

// InternalPathToFirstLeafContent returns the relative path from this
// container down through first children to the first non-container object,
// or to the first empty container on the way.
func (c *Container) InternalPathToFirstLeafContent() path.Path {
	if p := c.firstLeaf.Load(); p != nil {
		return *p
	}

	var comps []path.Component
	for cur := c; len(cur.content) > 0; {
		comps = append(comps, path.Index(0))
		next, ok := cur.content[0].(*Container)
		if !ok {
			break
		}
		cur = next
	}

	p := path.NewRelative(comps...)
	c.firstLeaf.Store(&p)
	return p
}

// PathToFirstLeafContent returns the absolute path of the first leaf.
func (c *Container) PathToFirstLeafContent() path.Path {
	return c.Path().Join(c.InternalPathToFirstLeafContent())
}

// CountFlags packs the counting settings into an int.
func (c *Container) CountFlags() int {
	var flags int
	if c.visitsShouldBeCounted {
		flags |= FlagVisits
	}
	if c.turnIndexShouldBeCounted {
		flags |= FlagTurns
	}
	if c.countingAtStartOnly {
		flags |= FlagCountStartOnly
	}
	// Start-only has no meaning without another flag.
	if flags == FlagCountStartOnly {
		flags = 0
	}
	return flags
}

// SetCountFlags unpacks flags into the counting settings.
func (c *Container) SetCountFlags(flags int) {
	c.visitsShouldBeCounted = flags&FlagVisits != 0
	c.turnIndexShouldBeCounted = flags&FlagTurns != 0
	c.countingAtStartOnly = flags&FlagCountStartOnly != 0
}

// VisitsShouldBeCounted reports whether entering the container counts as a visit.
func (c *Container) VisitsShouldBeCounted() bool { return c.visitsShouldBeCounted }

func (c *Container) SetVisitsShouldBeCounted(v bool) { c.visitsShouldBeCounted = v }

// TurnIndexShouldBeCounted reports whether the turn of the last visit is recorded.
func (c *Container) TurnIndexShouldBeCounted() bool { return c.turnIndexShouldBeCounted }

func (c *Container) SetTurnIndexShouldBeCounted(v bool) { c.turnIndexShouldBeCounted = v }

// CountingAtStartOnly reports whether only entries at the first child count.
func (c *Container) CountingAtStartOnly() bool { return c.countingAtStartOnly }

func (c *Container) SetCountingAtStartOnly(v bool) { c.countingAtStartOnly = v }

func (c *Container) insert(obj Object, index int) error {
	if obj == nil {
		return ErrNilObject
	}
	if obj.Parent() != nil {
		return ErrAlreadyParented
	}
	if index < 0 || index > len(c.content) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, len(c.content))
	}
	if err := checkName(obj); err != nil {
		return err
	}
	if n, ok := obj.(Nameable); ok && HasValidName(n) {
		if _, exists := c.namedContent[n.Name()]; exists {
			return fmt.Errorf("%q: %w", n.Name(), ErrDuplicateName)
		}
	}
	if err := c.checkCycle(obj); err != nil {
		return err
	}

	c.attachAt(obj, index)
	c.invalidate()
	return nil
}

// attachAt assumes obj has been validated for this container.
func (c *Container) attachAt(obj Object, index int) {
	c.content = append(c.content, nil)
	copy(c.content[index+1:], c.content[index:])
	c.content[index] = obj

	obj.base().attach(c, obj)
	if n, ok := obj.(Nameable); ok && HasValidName(n) {
		c.register(n)
	}
}

// checkName rejects names whose path form would not parse back to them.
func checkName(obj Object) error {
	n, ok := obj.(Nameable)
	if !ok || n.Name() == "" || path.IsValidName(n.Name()) {
		return nil
	}
	return fmt.Errorf("%q: %w", n.Name(), ErrInvalidName)
}

func (c *Container) register(n Nameable) {
	if c.namedContent == nil {
		c.namedContent = make(map[string]Nameable)
	}
	c.namedContent[n.Name()] = n
}

func (c *Container) checkCycle(obj Object) error {
	candidate, ok := obj.(*Container)
	if !ok {
		return nil
	}
	for anc := c; anc != nil; anc = anc.parent {
		if anc == candidate {
			return ErrCycle
		}
	}
	return nil
}

// invalidate clears the memoised first-leaf path here and on every ancestor.
func (c *Container) invalidate() {
	for cur := c; cur != nil; cur = cur.parent {
		cur.firstLeaf.Store(nil)
	}
}

func (c *Container) indexOf(obj Object) int {
	for i, o := range c.content {
		if o == obj {
			return i
		}
	}
	return -1
}

func (c *Container) positionalSet() map[Object]struct{} {
	set := make(map[Object]struct{}, len(c.content))
	for _, o := range c.content {
		set[o] = struct{}{}
	}
	return set
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
