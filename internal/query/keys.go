package query

import "time"

// KeyType distinguishes the keystrokes the interpreter understands
type KeyType int

const (
	KeyRune KeyType = iota
	KeyBackspace
	KeyEnter
	KeyUp
	KeyDown
	KeyEscape
)

// Key is a single keystroke forwarded by the host's input routing layer
type Key struct {
	Type KeyType
	Rune rune
	// At is when the key was pressed. Zero means "now".
	At time.Time
}

// Rune builds a printable keystroke
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// Special builds a non-printable keystroke
func Special(t KeyType) Key {
	return Key{Type: t}
}

// Markers that switch the interpretation of the buffer
const (
	MarkerCommand = ':'
	MarkerFinder  = '?'
	MarkerToggle  = '/'
)
