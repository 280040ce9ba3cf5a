// Package core defines the widget contract and the state tree that keeps
// widget-internal state alive across view rebuilds.
//
// Widgets are plain values produced fresh by the application's view function
// on every update. Anything a widget must remember between frames (hover,
// press, scroll offset, cursor position) lives in a [Tree] node instead. After
// each rebuild the runtime diffs the previous tree against the new widget
// values: nodes whose [Tag] still matches keep their state, mismatches are
// reinitialized.
//
// Optional behavior is expressed as small capability interfaces ([Stateful],
// [Parent], [Keyed], [Differ], [Focusable], [Scroller], [Identified]) that
// the runtime probes with type assertions.
package core
