package ganvas

import (
	"fmt"
	"log"
)

// noIndex is passed to Tree/Canvas methods that take an optional
// sibling index, meaning "append at the end."
const noIndex = -1

// View is implemented by anything that wants to be notified when a
// Canvas's items, matrices, or membership change. Canvas fans out one
// notification per RequestUpdate/Remove call to every registered view;
// UpdateNow itself sends none.
type View interface {
	RequestUpdate(dirtyItems, dirtyMatrixItems, removedItems []Item)
}

// Canvas is the container for a scene of items: it owns the Tree that
// orders them, the Connections registry (which in turn owns the
// Solver), and the set of items waiting for their next UpdateNow.
type Canvas struct {
	tree        *Tree
	connections *Connections

	dirtyItems map[Item]struct{}
	updating   bool

	registeredViews map[View]struct{}

	// CreateUpdateContext builds the Context passed to an item's
	// PreUpdate/PostUpdate during UpdateNow. Defaults to an empty
	// Context{} per item; a host replaces it to thread in view state
	// (the hovered/selected/focused/dropzone/draw-all flags).
	CreateUpdateContext func(item Item) *Context
}

// NewCanvas returns an empty Canvas backed by a fresh Connections
// registry and Solver.
func NewCanvas() *Canvas {
	return &Canvas{
		tree:                NewTree(),
		connections:         NewConnections(),
		dirtyItems:          make(map[Item]struct{}),
		registeredViews:     make(map[View]struct{}),
		CreateUpdateContext: defaultUpdateContext,
	}
}

func defaultUpdateContext(Item) *Context {
	return &Context{}
}

// Connections returns the canvas's connections registry.
func (c *Canvas) Connections() *Connections {
	return c.connections
}

// Solver returns the solver backing the canvas's connections registry.
func (c *Canvas) Solver() *Solver {
	return c.connections.Solver()
}

// Add inserts item into the tree under parent (nil for a root item) at
// index (pass noIndex to append), and schedules it for update.
// Panics if item is already in the tree.
func (c *Canvas) Add(item Item, parent Item, index int) {
	if item == nil {
		panic("ganvas: cannot add a nil item to the canvas")
	}
	c.tree.Add(item, parent, index)
	c.RequestUpdate(item, true, true)
}

// Remove deletes item and its entire subtree from the canvas: children
// are removed first, every connection to or from item is torn down
// (invoking callbacks and freeing constraints from the solver), then
// item itself leaves the tree. Registered views are notified with the
// full set of removed items.
func (c *Canvas) Remove(item Item) {
	removed := c.collectRemoval(item)
	for _, it := range removed {
		c.connections.RemoveConnectionsToItem(it)
	}
	c.tree.Remove(item)
	for _, it := range removed {
		delete(c.dirtyItems, it)
	}
	c.updateViews(nil, nil, removed)
}

// collectRemoval returns item's descendants followed by item itself, in
// the order Remove will delete them: children before parents, deepest
// first.
func (c *Canvas) collectRemoval(item Item) []Item {
	var out []Item
	children := c.tree.GetChildren(item)
	for i := len(children) - 1; i >= 0; i-- {
		out = append(out, c.collectRemoval(children[i])...)
	}
	out = append(out, item)
	return out
}

// Reparent moves item (and its subtree) to a new parent at index
// (pass noIndex to append).
func (c *Canvas) Reparent(item Item, parent Item, index int) {
	c.tree.Move(item, parent, index)
	c.RequestUpdate(item, true, true)
}

// GetAllItems returns every item in the canvas, depth-first order.
func (c *Canvas) GetAllItems() []Item {
	return c.tree.Nodes()
}

// GetRootItems returns the canvas's top-level items.
func (c *Canvas) GetRootItems() []Item {
	return c.tree.GetChildren(nil)
}

// GetParent returns item's parent, or nil if item is a root item.
func (c *Canvas) GetParent(item Item) Item {
	return c.tree.GetParent(item)
}

// GetChildren returns item's direct children.
func (c *Canvas) GetChildren(item Item) []Item {
	return c.tree.GetChildren(item)
}

// Sort orders items in the canvas's depth-first traversal order.
func (c *Canvas) Sort(items []Item) []Item {
	return c.tree.Order(items)
}

// GetMatrixI2C composes item's local matrix with every ancestor's,
// returning the affine that maps item-local coordinates to canvas
// coordinates.
func (c *Canvas) GetMatrixI2C(item Item) *Matrix {
	m := item.Matrix()
	if parent := c.tree.GetParent(item); parent != nil {
		m = m.Multiply(c.GetMatrixI2C(parent))
	}
	return m
}

// RequestUpdate notifies registered views that item needs attention;
// update requests a full pre/post-update pass, matrix requests matrix
// recomposition. item is recorded in the canvas's own dirty set, and
// the request is fanned out to views (which typically accumulate it
// into their own dirty set until they call UpdateNow). UpdateNow works
// from its own arguments, not from the canvas's dirty set.
func (c *Canvas) RequestUpdate(item Item, update, matrix bool) {
	c.dirtyItems[item] = struct{}{}
	switch {
	case update && matrix:
		c.updateViews([]Item{item}, []Item{item}, nil)
	case update:
		c.updateViews([]Item{item}, nil, nil)
	case matrix:
		c.updateViews(nil, []Item{item}, nil)
	}
}

// RequestMatrixUpdate schedules only a matrix recomposition for item.
func (c *Canvas) RequestMatrixUpdate(item Item) {
	c.RequestUpdate(item, false, true)
}

// UpdateNow resolves a pending update cycle: it extends the dirty set
// with every dirty item's ancestors, calls PreUpdate on each of them
// bottom-up, recomposes MatrixI2C for the items passed in dirtyItems
// and dirtyMatrixItems, runs one solver.Solve, then calls PostUpdate
// on each item bottom-up. Re-entrant calls (from inside an item's own
// update hook) are a no-op. Panics from PreUpdate, PostUpdate, or the
// solver are caught, logged, and do not escape.
func (c *Canvas) UpdateNow(dirtyItems, dirtyMatrixItems []Item) {
	if c.updating {
		return
	}
	c.updating = true
	defer func() { c.updating = false }()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ganvas: error while updating canvas: %v", r)
		}
	}()

	seen := make(map[Item]struct{})
	var withAncestors []Item
	add := func(item Item) {
		if _, ok := seen[item]; ok {
			return
		}
		seen[item] = struct{}{}
		withAncestors = append(withAncestors, item)
	}
	for _, item := range dirtyItems {
		add(item)
		for _, a := range c.tree.GetAncestors(item) {
			add(a)
		}
	}
	for _, item := range dirtyMatrixItems {
		add(item)
		for _, a := range c.tree.GetAncestors(item) {
			add(a)
		}
	}

	ordered := c.tree.Order(withAncestors)
	allDirty := make([]Item, len(ordered))
	for i, item := range ordered {
		allDirty[len(ordered)-1-i] = item
	}

	contexts := c.preUpdateItems(allDirty)

	for _, d := range dirtyItems {
		d.MatrixI2C().setTuple(c.GetMatrixI2C(d).tuple())
	}
	for _, d := range dirtyMatrixItems {
		d.MatrixI2C().setTuple(c.GetMatrixI2C(d).tuple())
	}

	c.connections.Solve()

	c.postUpdateItems(allDirty, contexts)

	for _, item := range dirtyItems {
		delete(c.dirtyItems, item)
	}
	for _, item := range dirtyMatrixItems {
		delete(c.dirtyItems, item)
	}
}

func (c *Canvas) preUpdateItems(items []Item) map[Item]*Context {
	contexts := make(map[Item]*Context, len(items))
	for _, item := range items {
		ctx := c.CreateUpdateContext(item)
		item.PreUpdate(ctx)
		contexts[item] = ctx
	}
	return contexts
}

func (c *Canvas) postUpdateItems(items []Item, contexts map[Item]*Context) {
	for _, item := range items {
		ctx := contexts[item]
		if ctx == nil {
			ctx = c.CreateUpdateContext(item)
		}
		item.PostUpdate(ctx)
	}
}

// RegisterView adds v to the set of views notified by RequestUpdate and
// Remove. Called when a view attaches itself to
// this canvas; not meant to be called directly by item code.
func (c *Canvas) RegisterView(v View) {
	c.registeredViews[v] = struct{}{}
}

// UnregisterView removes v from the canvas's notified views.
func (c *Canvas) UnregisterView(v View) {
	delete(c.registeredViews, v)
}

func (c *Canvas) updateViews(dirtyItems, dirtyMatrixItems, removedItems []Item) {
	for v := range c.registeredViews {
		v.RequestUpdate(dirtyItems, dirtyMatrixItems, removedItems)
	}
}

// String returns a short diagnostic summary, useful in panic/log
// messages that reference a canvas.
func (c *Canvas) String() string {
	return fmt.Sprintf("Canvas(%d items)", len(c.tree.nodes))
}
