package testing

import (
	"fmt"
	"reflect"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/engine"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/widgets"
)

// Finder locates widgets in the current layout.
type Finder interface {
	// Match reports whether the entry is one the finder looks for.
	Match(e engine.Entry) bool
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	entries []engine.Entry
	finder  Finder
}

// Find returns the widgets matched by finder, in tree order.
func (t *Tester[S]) Find(finder Finder) FinderResult {
	var matched []engine.Entry
	for _, e := range t.inst.UI().Entries() {
		if finder.Match(e) {
			matched = append(matched, e)
		}
	}
	return FinderResult{entries: matched, finder: finder}
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() engine.Entry {
	if len(r.entries) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.finder.Description()))
	}
	return r.entries[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) engine.Entry {
	if index < 0 || index >= len(r.entries) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.entries), r.finder.Description()))
	}
	return r.entries[index]
}

// All returns all matches in tree order.
func (r FinderResult) All() []engine.Entry { return r.entries }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.entries) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.entries) > 0 }

// Widget returns the widget of the first match. Panics if no matches.
func (r FinderResult) Widget() core.Widget { return r.First().Widget }

// Tree returns the state node of the first match. Panics if no matches.
func (r FinderResult) Tree() *core.Tree { return r.First().Tree }

// Bounds returns the window rectangle of the first match. Panics if no
// matches.
func (r FinderResult) Bounds() graphics.Rect { return r.First().Bounds }

type typeFinder struct {
	widgetType reflect.Type
}

func (f typeFinder) Match(e engine.Entry) bool {
	return reflect.TypeOf(e.Widget) == f.widgetType
}

func (f typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.widgetType)
}

// ByType matches widgets of type T.
func ByType[T core.Widget]() Finder {
	return typeFinder{widgetType: reflect.TypeOf((*T)(nil)).Elem()}
}

type idFinder string

func (f idFinder) Match(e engine.Entry) bool {
	w, ok := e.Widget.(core.Identified)
	return ok && w.ID() == string(f)
}

func (f idFinder) Description() string {
	return fmt.Sprintf("ByID(%q)", string(f))
}

// ByID matches widgets whose ID is id.
func ByID(id string) Finder {
	return idFinder(id)
}

type keyFinder struct {
	key any
}

func (f keyFinder) Match(e engine.Entry) bool {
	w, ok := e.Widget.(core.Keyed)
	return ok && w.Key() == f.key
}

func (f keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey matches keyed widgets whose key equals key. The key must be
// comparable.
func ByKey(key any) Finder {
	return keyFinder{key: key}
}

type textFinder string

func (f textFinder) Match(e engine.Entry) bool {
	t, ok := e.Widget.(widgets.Text)
	return ok && t.Content == string(f)
}

func (f textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", string(f))
}

// ByText matches Text widgets showing exactly content. Button labels are
// Text children of the button, so tapping ByText(label) presses it.
func ByText(content string) Finder {
	return textFinder(content)
}

type predicateFinder struct {
	desc  string
	match func(core.Widget) bool
}

func (f predicateFinder) Match(e engine.Entry) bool { return f.match(e.Widget) }

func (f predicateFinder) Description() string {
	return fmt.Sprintf("ByPredicate(%s)", f.desc)
}

// ByPredicate matches widgets for which match returns true.
func ByPredicate(desc string, match func(core.Widget) bool) Finder {
	return predicateFinder{desc: desc, match: match}
}
