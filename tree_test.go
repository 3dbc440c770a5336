package ganvas

import (
	"reflect"
	"testing"
)

// stubItem is a minimal Item used purely as an opaque tree node in
// these tests; its geometry methods are never exercised.
type stubItem struct {
	name string
	itemBase

	preHook func(*Context)
}

func newStub(name string) *stubItem {
	return &stubItem{name: name, itemBase: newItemBase()}
}

func (s *stubItem) Handles() []*Handle { return nil }
func (s *stubItem) Ports() []Port      { return nil }
func (s *stubItem) Point(float64, float64) float64 { return 0 }
func (s *stubItem) Draw(*Context)      {}

func (s *stubItem) PreUpdate(ctx *Context) {
	if s.preHook != nil {
		s.preHook(ctx)
	}
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.(*stubItem).name
	}
	return out
}

func TestTreeAddRootItems(t *testing.T) {
	tree := NewTree()
	n1, n2 := newStub("n1"), newStub("n2")
	tree.Add(n1, nil, noIndex)
	tree.Add(n2, nil, noIndex)

	if got := names(tree.Nodes()); !reflect.DeepEqual(got, []string{"n1", "n2"}) {
		t.Fatalf("got %v", got)
	}
}

func TestTreeGetParentAndChildren(t *testing.T) {
	tree := NewTree()
	n1, n2 := newStub("n1"), newStub("n2")
	tree.Add(n1, nil, noIndex)
	tree.Add(n2, n1, noIndex)

	if tree.GetParent(n2) != Item(n1) {
		t.Fatalf("expected n1 to be n2's parent")
	}
	if tree.GetParent(n1) != nil {
		t.Fatalf("expected n1 to be a root item")
	}
	if got := names(tree.GetChildren(n1)); !reflect.DeepEqual(got, []string{"n2"}) {
		t.Fatalf("got %v", got)
	}
}

func TestTreeSiblingNavigation(t *testing.T) {
	tree := NewTree()
	n1 := newStub("n1")
	tree.Add(n1, nil, noIndex)
	n2, n3 := newStub("n2"), newStub("n3")
	tree.Add(n2, n1, noIndex)
	tree.Add(n3, n1, noIndex)

	if tree.GetNextSibling(n2) != Item(n3) {
		t.Fatalf("expected n3 to follow n2")
	}
	if tree.GetPreviousSibling(n3) != Item(n2) {
		t.Fatalf("expected n2 to precede n3")
	}
	if got := names(tree.GetSiblings(n2)); !reflect.DeepEqual(got, []string{"n2", "n3"}) {
		t.Fatalf("got %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing next sibling")
		}
	}()
	tree.GetNextSibling(n3)
}

func TestTreeGetAllChildrenAndAncestors(t *testing.T) {
	tree := NewTree()
	n1 := newStub("n1")
	tree.Add(n1, nil, noIndex)
	n2 := newStub("n2")
	tree.Add(n2, n1, noIndex)
	n3 := newStub("n3")
	tree.Add(n3, n2, noIndex)

	if got := names(tree.GetAllChildren(n1)); !reflect.DeepEqual(got, []string{"n2", "n3"}) {
		t.Fatalf("got %v", got)
	}
	if got := names(tree.GetAncestors(n3)); !reflect.DeepEqual(got, []string{"n2", "n1"}) {
		t.Fatalf("got %v", got)
	}
	if got := tree.GetAncestors(n1); len(got) != 0 {
		t.Fatalf("expected root item to have no ancestors, got %v", got)
	}
}

func TestTreeOrder(t *testing.T) {
	tree := NewTree()
	n1 := newStub("n1")
	tree.Add(n1, nil, noIndex)
	n2, n3 := newStub("n2"), newStub("n3")
	tree.Add(n2, n1, noIndex)
	tree.Add(n3, n1, noIndex)

	got := names(tree.Order([]Item{n3, n1, n2}))
	if !reflect.DeepEqual(got, []string{"n1", "n2", "n3"}) {
		t.Fatalf("got %v", got)
	}
}

func TestTreeRemoveRemovesSubtree(t *testing.T) {
	tree := NewTree()
	n1 := newStub("n1")
	tree.Add(n1, nil, noIndex)
	n2 := newStub("n2")
	tree.Add(n2, n1, noIndex)

	tree.Remove(n1)

	if got := tree.Nodes(); len(got) != 0 {
		t.Fatalf("expected an empty tree, got %v", got)
	}
}

func TestTreeMoveRelocatesNodeAndChildren(t *testing.T) {
	tree := NewTree()
	n1 := newStub("n1")
	tree.Add(n1, nil, noIndex)
	n2, n3 := newStub("n2"), newStub("n3")
	tree.Add(n2, n1, noIndex)
	tree.Add(n3, n1, noIndex)
	if got := names(tree.Nodes()); !reflect.DeepEqual(got, []string{"n1", "n2", "n3"}) {
		t.Fatalf("got %v", got)
	}

	tree.Move(n2, n3, noIndex)
	if tree.GetParent(n2) != Item(n3) {
		t.Fatalf("expected n3 to be n2's new parent")
	}
	if got := names(tree.GetChildren(n3)); !reflect.DeepEqual(got, []string{"n2"}) {
		t.Fatalf("got %v", got)
	}
	if got := names(tree.Nodes()); !reflect.DeepEqual(got, []string{"n1", "n3", "n2"}) {
		t.Fatalf("got %v", got)
	}

	n4 := newStub("n4")
	tree.Add(n4, nil, noIndex)
	tree.Move(n1, n4, noIndex)
	if got := names(tree.GetAllChildren(n4)); !reflect.DeepEqual(got, []string{"n1", "n3", "n2"}) {
		t.Fatalf("got %v", got)
	}
	if got := names(tree.Nodes()); !reflect.DeepEqual(got, []string{"n4", "n1", "n3", "n2"}) {
		t.Fatalf("got %v", got)
	}
}

func TestTreeAddAtIndex(t *testing.T) {
	tree := NewTree()
	n1 := newStub("n1")
	tree.Add(n1, nil, noIndex)
	n2, n3 := newStub("n2"), newStub("n3")
	tree.Add(n2, n1, noIndex)
	tree.Add(n3, n1, noIndex)

	n2b := newStub("n2b")
	tree.Add(n2b, n1, 1)
	if got := names(tree.GetChildren(n1)); !reflect.DeepEqual(got, []string{"n2", "n2b", "n3"}) {
		t.Fatalf("got %v", got)
	}
	if got := names(tree.Nodes()); !reflect.DeepEqual(got, []string{"n1", "n2", "n2b", "n3"}) {
		t.Fatalf("got %v", got)
	}
}

func TestTreeAddDuplicatePanics(t *testing.T) {
	tree := NewTree()
	n1 := newStub("n1")
	tree.Add(n1, nil, noIndex)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate add")
		}
	}()
	tree.Add(n1, nil, noIndex)
}
