package content

// SearchResult is the outcome of a path lookup. When Approximate is set, Obj
// is the deepest object reached before resolution failed.
type SearchResult struct {
	Obj         Object
	Approximate bool
}

// CorrectObj returns Obj for exact results and nil otherwise.
func (r SearchResult) CorrectObj() Object {
	if r.Approximate {
		return nil
	}
	return r.Obj
}

// Container returns Obj as a container, or nil when it is a leaf.
func (r SearchResult) Container() *Container {
	c, _ := r.Obj.(*Container)
	return c
}
