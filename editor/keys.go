package editor

// SpecialKey represents the keys tools react to besides printable runes.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyEscape
)

// String returns the key name for display.
func (k SpecialKey) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// KeyEvent represents either a regular character or a special key
type KeyEvent struct {
	Rune       rune
	SpecialKey SpecialKey
}

// RuneKey returns the event for a typed character.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Rune: r}
}

// Special returns the event for a special key.
func Special(k SpecialKey) KeyEvent {
	return KeyEvent{SpecialKey: k}
}

// IsSpecial returns true if this is a special key event
func (k KeyEvent) IsSpecial() bool {
	return k.SpecialKey != KeyNone
}
