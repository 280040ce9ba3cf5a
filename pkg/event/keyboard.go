package event

// Key names a key. Character keys use the character itself.
type Key string

// Named keys.
const (
	KeyTab       Key = "Tab"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyBackspace Key = "Backspace"
	KeyDelete    Key = "Delete"
	KeyLeft      Key = "ArrowLeft"
	KeyRight     Key = "ArrowRight"
	KeyUp        Key = "ArrowUp"
	KeyDown      Key = "ArrowDown"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
	KeySpace     Key = " "
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModLogo
)

// Shift reports whether shift is held.
func (m Modifiers) Shift() bool { return m&ModShift != 0 }

// Ctrl reports whether control is held.
func (m Modifiers) Ctrl() bool { return m&ModCtrl != 0 }

// Alt reports whether alt is held.
func (m Modifiers) Alt() bool { return m&ModAlt != 0 }

// Command reports whether the platform command modifier (ctrl or logo) is held.
func (m Modifiers) Command() bool { return m&(ModCtrl|ModLogo) != 0 }

// KeyKind identifies a keyboard event.
type KeyKind int

const (
	KeyPressed KeyKind = iota
	KeyReleased
	ModifiersChanged
)

// Keyboard is a key event delivered to the focused widget.
type Keyboard struct {
	Stamp
	Kind      KeyKind
	Key       Key
	Modifiers Modifiers
	// Text is the text the key produces, if any.
	Text string
}

// Focus tells a widget it gained or lost keyboard focus.
type Focus struct {
	Stamp
	Gained bool
}
