// Package widgets provides the built-in widgets.
//
// Widgets are plain values rebuilt by the view function on every update.
// Anything that must survive a rebuild (hover and press state, scroll
// offsets, text cursors) lives in the widget's state tree node, created by
// InitState and kept for as long as the widget keeps its place and type.
//
// # Widget Construction
//
// The struct literal is the canonical form:
//
//	widgets.Button{
//	    Label:   "Increment",
//	    OnPress: Increment{},
//	    Padding: layout.PaddingSymmetric(8, 16),
//	}
//
// Helpers cover the common cases:
//
//	widgets.ColumnOf(
//	    widgets.ButtonOf("Increment", Increment{}),
//	    widgets.TextOf(strconv.Itoa(count)).WithSize(50),
//	    widgets.ButtonOf("Decrement", Decrement{}),
//	).WithPadding(layout.PaddingAll(20)).WithAlign(layout.AlignCenter)
//
// WithX methods return copies; they never mutate the receiver.
//
// # Messages
//
// Interactive widgets publish application messages (OnPress, OnToggle,
// OnInput). A nil message or mapper disables the interaction.
package widgets
