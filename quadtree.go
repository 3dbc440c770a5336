package ganvas

import (
	"fmt"
	"strings"
)

// defaultQuadtreeCapacity is how many items a bucket holds before it
// splits into four children covering its four quadrants.
const defaultQuadtreeCapacity = 10

// quadtreeEntry records where an item currently lives in a Quadtree:
// the bounds and data it was last added with, and the bucket it was
// placed in (so Remove/move only search that bucket's subtree; a later
// split may have moved the item into one of its descendants).
type quadtreeEntry struct {
	bounds Rect
	data   interface{}
	bucket *quadtreeBucket
}

// Quadtree is a bounded spatial index over (item -> (bounds, data))
// pairs, used for hit-testing and viewport culling. A bucket accepts
// up to its capacity of items before splitting into four sub-buckets;
// an item that straddles more than one quadrant stays at the level
// whose bucket fully contains it.
type Quadtree struct {
	capacity int
	root     *quadtreeBucket
	ids      map[interface{}]quadtreeEntry
}

// NewQuadtree returns an empty Quadtree covering bounds, splitting
// buckets at the default capacity of 10 items.
func NewQuadtree(bounds Rect) *Quadtree {
	return NewQuadtreeWithCapacity(bounds, defaultQuadtreeCapacity)
}

// NewQuadtreeWithCapacity returns an empty Quadtree covering bounds,
// splitting a bucket once it holds more than capacity items.
func NewQuadtreeWithCapacity(bounds Rect, capacity int) *Quadtree {
	return &Quadtree{
		capacity: capacity,
		root:     newQuadtreeBucket(bounds, capacity),
		ids:      make(map[interface{}]quadtreeEntry),
	}
}

// Bounds returns the tree's declared bounds, as given to NewQuadtree
// or the last Resize.
func (q *Quadtree) Bounds() Rect {
	return q.root.bounds
}

// SoftBounds returns the union of every currently stored item's
// bounds, which may extend past Bounds() if an item was added (or
// moved) outside it.
func (q *Quadtree) SoftBounds() Rect {
	first := true
	var out Rect
	for _, e := range q.ids {
		if first {
			out = e.bounds
			first = false
			continue
		}
		out = out.Union(e.bounds)
	}
	return out
}

// Add inserts item at bounds carrying data, or moves it (removing it
// from its previous bucket first) if item is already present.
func (q *Quadtree) Add(item interface{}, bounds Rect, data interface{}) {
	if existing, ok := q.ids[item]; ok {
		existing.bucket.remove(item)
	}
	bucket := q.root.add(item, bounds)
	q.ids[item] = quadtreeEntry{bounds: bounds, data: data, bucket: bucket}
}

// Remove deletes item from the tree. Removing an item that isn't
// present is a no-op.
func (q *Quadtree) Remove(item interface{}) {
	e, ok := q.ids[item]
	if !ok {
		return
	}
	e.bucket.remove(item)
	delete(q.ids, item)
}

// GetBounds returns the bounds item was last added with.
func (q *Quadtree) GetBounds(item interface{}) Rect {
	return q.ids[item].bounds
}

// GetData returns the data item was last added with.
func (q *Quadtree) GetData(item interface{}) interface{} {
	return q.ids[item].data
}

// FindInside returns every item whose bounds lie entirely inside rect.
func (q *Quadtree) FindInside(rect Rect) []interface{} {
	var out []interface{}
	q.root.findInside(rect, &out)
	return out
}

// FindIntersect returns every item whose bounds intersect rect,
// shared edges counting as intersecting.
func (q *Quadtree) FindIntersect(rect Rect) []interface{} {
	var out []interface{}
	q.root.findIntersect(rect, &out)
	return out
}

// Resize rebuilds the tree over new bounds from the (item, bounds,
// data) snapshot it already holds, rather than attempting to
// re-bucket the existing structure in place.
func (q *Quadtree) Resize(bounds Rect) {
	snapshot := make(map[interface{}]quadtreeEntry, len(q.ids))
	for item, e := range q.ids {
		snapshot[item] = e
	}
	q.root = newQuadtreeBucket(bounds, q.capacity)
	q.ids = make(map[interface{}]quadtreeEntry, len(snapshot))
	for item, e := range snapshot {
		q.Add(item, e.bounds, e.data)
	}
}

// Clear removes every item from the tree.
func (q *Quadtree) Clear() {
	q.root.clear()
	q.ids = make(map[interface{}]quadtreeEntry)
}

// Dump returns a depth-first, indented diagnostic listing of the
// bucket tree: each line is a bucket's bounds and how many items it
// directly holds.
func (q *Quadtree) Dump() string {
	var sb strings.Builder
	q.root.dump(&sb, 0)
	return sb.String()
}

// quadtreeBucket is one node of a Quadtree: either a leaf holding up to
// capacity items directly, or split into exactly four children
// covering its four quadrants.
type quadtreeBucket struct {
	bounds   Rect
	capacity int
	items    map[interface{}]Rect
	buckets  []*quadtreeBucket
}

func newQuadtreeBucket(bounds Rect, capacity int) *quadtreeBucket {
	return &quadtreeBucket{bounds: bounds, capacity: capacity, items: make(map[interface{}]Rect)}
}

// contains reports whether bounds lies entirely inside the bucket's
// own bounds.
func (b *quadtreeBucket) contains(bounds Rect) bool {
	return RectangleContains(bounds, b.bounds)
}

// add inserts item at bounds, splitting this bucket first if it's
// already at capacity and has no children. Returns the bucket item
// actually ended up in: a child if bounds fit entirely inside one,
// otherwise this bucket itself.
func (b *quadtreeBucket) add(item interface{}, bounds Rect) *quadtreeBucket {
	if b.buckets == nil && len(b.items) >= b.capacity {
		b.split()
	}
	for _, child := range b.buckets {
		if child.contains(bounds) {
			return child.add(item, bounds)
		}
	}
	b.items[item] = bounds
	return b
}

// split carves the bucket into four quadrant children and redistributes
// its current items: an item that fits entirely inside one child moves
// there (possibly triggering that child to split too); an item
// straddling more than one quadrant stays on this bucket.
func (b *quadtreeBucket) split() {
	x, y, w, h := b.bounds.X, b.bounds.Y, b.bounds.Width, b.bounds.Height
	rw, rh := w/2, h/2
	cx, cy := x+rw, y+rh
	b.buckets = []*quadtreeBucket{
		newQuadtreeBucket(Rect{X: x, Y: y, Width: rw, Height: rh}, b.capacity),
		newQuadtreeBucket(Rect{X: cx, Y: y, Width: rw, Height: rh}, b.capacity),
		newQuadtreeBucket(Rect{X: x, Y: cy, Width: rw, Height: rh}, b.capacity),
		newQuadtreeBucket(Rect{X: cx, Y: cy, Width: rw, Height: rh}, b.capacity),
	}
	old := b.items
	b.items = make(map[interface{}]Rect)
	for item, bounds := range old {
		b.add(item, bounds)
	}
}

// remove deletes item from this bucket or, if a split has since moved
// it further down, from whichever descendant bucket holds it.
func (b *quadtreeBucket) remove(item interface{}) bool {
	if _, ok := b.items[item]; ok {
		delete(b.items, item)
		return true
	}
	for _, child := range b.buckets {
		if child.remove(item) {
			return true
		}
	}
	return false
}

// clear empties the bucket and discards its children.
func (b *quadtreeBucket) clear() {
	b.buckets = nil
	b.items = make(map[interface{}]Rect)
}

func (b *quadtreeBucket) findInside(rect Rect, out *[]interface{}) {
	for item, bounds := range b.items {
		if RectangleContains(bounds, rect) {
			*out = append(*out, item)
		}
	}
	for _, child := range b.buckets {
		if child.bounds.Intersects(rect) {
			child.findInside(rect, out)
		}
	}
}

func (b *quadtreeBucket) findIntersect(rect Rect, out *[]interface{}) {
	for item, bounds := range b.items {
		if bounds.Intersects(rect) {
			*out = append(*out, item)
		}
	}
	for _, child := range b.buckets {
		if child.bounds.Intersects(rect) {
			child.findIntersect(rect, out)
		}
	}
}

func (b *quadtreeBucket) dump(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s%v: %d item(s)\n", strings.Repeat("  ", depth), b.bounds, len(b.items))
	for _, child := range b.buckets {
		child.dump(sb, depth+1)
	}
}
