package focus

import (
	"testing"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

type node struct {
	core.IgnoreEvents
	id        string
	focusable bool
	children  []core.Widget
}

func (n node) Sizing() layout.Sizing                             { return layout.Sizing{} }
func (n node) Measure(*core.Tree, layout.Limits) graphics.Size   { return graphics.Size{} }
func (n node) Arrange(_ *core.Tree, s graphics.Size) layout.Node { return layout.NewNode(s) }
func (n node) Draw(*core.Tree, *graphics.Recorder, layout.Node)  {}
func (n node) Children() []core.Widget                           { return n.children }
func (n node) Focusable(*core.Tree) bool                         { return n.focusable }
func (n node) ID() string                                        { return n.id }

func sample() (core.Widget, *core.Tree) {
	root := node{children: []core.Widget{
		node{id: "a", focusable: true},
		node{children: []core.Widget{
			node{id: "b", focusable: true},
			node{id: "skip"},
		}},
		node{id: "c", focusable: true},
	}}
	return root, core.NewTree(root)
}

func TestCollectTreeOrder(t *testing.T) {
	root, tree := sample()
	targets := Collect(root, tree)
	var ids []string
	for _, tg := range targets {
		ids = append(ids, tg.Widget.(node).id)
	}
	want := []string{"a", "b", "c"}
	if len(ids) != len(want) {
		t.Fatalf("Collect() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Collect()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if got := targets[1].Path.String(); got != "1/0" {
		t.Errorf("path of b = %q, want 1/0", got)
	}
}

func TestMoveWraps(t *testing.T) {
	root, tree := sample()
	var m Manager

	steps := []struct {
		dir  TraversalDirection
		want string
	}{
		{TraversalNext, "a"},
		{TraversalNext, "b"},
		{TraversalNext, "c"},
		{TraversalNext, "a"},
		{TraversalPrevious, "c"},
	}
	for i, s := range steps {
		if _, ok := m.Move(root, tree, s.dir); !ok {
			t.Fatalf("step %d: Move() reported nothing focusable", i)
		}
		got, _ := Find(root, tree, m.Primary())
		if id := got.Widget.(node).id; id != s.want {
			t.Errorf("step %d: focused %q, want %q", i, id, s.want)
		}
	}
}

func TestMovePreviousFromNothing(t *testing.T) {
	root, tree := sample()
	var m Manager
	change, _ := m.Move(root, tree, TraversalPrevious)
	if change.Lost != nil || change.Gained != tree.Children[2] {
		t.Errorf("unexpected change %+v", change)
	}
}

func TestMoveWithoutFocusables(t *testing.T) {
	root := node{}
	var m Manager
	if _, ok := m.Move(root, core.NewTree(root), TraversalNext); ok {
		t.Error("Move() should report false without focusable widgets")
	}
}

func TestValidateDropsRemovedWidget(t *testing.T) {
	_, tree := sample()
	var m Manager
	m.SetPrimary(tree.Children[0])

	replacement := node{}
	tree = tree.Diff(replacement)
	change := m.Validate(replacement, tree)
	if !change.Changed() || m.Primary() != nil {
		t.Errorf("focus should be dropped, got %+v primary=%p", change, m.Primary())
	}
}

func TestFindByID(t *testing.T) {
	root, tree := sample()
	target, ok := FindByID(root, tree, "b")
	if !ok || target.Tree != tree.Children[1].Children[0] {
		t.Errorf("FindByID(b) = %+v, %v", target, ok)
	}
	if _, ok := FindByID(root, tree, "missing"); ok {
		t.Error("FindByID should fail for unknown ids")
	}
}
