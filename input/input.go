// Package input defines the key and button events delivered to the explorer
// and to plugins.
package input

// Key identifies a keyboard key. Letters use their upper-case ASCII code.
type Key uint8

const (
	KeyBackspace  Key = 8
	KeyTab        Key = 9
	KeyEnter      Key = 13
	KeyEscape     Key = 27
	KeySpace      Key = ' '
	KeyApostrophe Key = '\''
	KeyComma      Key = ','
	KeyMinus      Key = '-'
	KeyPeriod     Key = '.'
	KeySlash      Key = '/'
	KeySemicolon  Key = ';'
)

// Navigation keys sit above the ASCII range.
const (
	KeyLeft Key = 128 + iota
	KeyRight
	KeyUp
	KeyDown
)

// IsLetter reports whether k is in 'A'..'Z'.
func (k Key) IsLetter() bool { return k >= 'A' && k <= 'Z' }

// IsDigit reports whether k is in '0'..'9'.
func (k Key) IsDigit() bool { return k >= '0' && k <= '9' }

// Action is what happened to a key or button.
type Action uint8

const (
	Release Action = iota
	Press
	Repeat
)

// Mods is the set of modifier keys held during an event.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModControl
	ModAlt
)

// Has reports whether every modifier in m is held.
func (m Mods) Has(mod Mods) bool { return m&mod == mod }

// Event is one key transition.
type Event struct {
	Key    Key
	Action Action
	Mods   Mods
}

// Pressed reports whether the event is a press or an auto-repeat.
func (e Event) Pressed() bool { return e.Action == Press || e.Action == Repeat }

// Button identifies a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)
