package menu

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Button is the pointer button that produced a pointer-down.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
	ButtonOther
)

// PointerKind is the input device behind a pointer event.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerPen
)

// Pointer describes a pointer-down.
type Pointer struct {
	Button Button
	Mods   Modifiers
	Kind   PointerKind
	// Secondary marks an additional touch or pen contact while another is active.
	Secondary bool
}

// KeyCode names the keys the menu reacts to.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeySpace
	KeyEscape
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Key is a key-down.
type Key struct {
	Code KeyCode
	Rune rune
	Mods Modifiers
}

// Char builds a printable key-down.
func Char(r rune) Key {
	if r == ' ' {
		return Key{Code: KeySpace, Rune: ' '}
	}
	return Key{Code: KeyRune, Rune: r}
}

// Press builds a named key-down.
func Press(code KeyCode) Key {
	return Key{Code: code}
}
