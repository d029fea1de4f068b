package emu

// Button is a joypad input, numbered by its bit in the pressed mask: the low
// nibble is the d-pad, the high nibble the action buttons.
type Button uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

var buttonNames = [...]string{"right", "left", "up", "down", "a", "b", "select", "start"}

func (b Button) String() string {
	if int(b) >= len(buttonNames) {
		return "unknown"
	}
	return buttonNames[b]
}

func (b Button) mask() byte { return 1 << b }

// ParseButton maps a wire name to a Button. Names match exactly.
func ParseButton(s string) (Button, bool) {
	for i, n := range buttonNames {
		if n == s {
			return Button(i), true
		}
	}
	return 0, false
}

// IsAction reports whether b is one of A, B, Select or Start.
func (b Button) IsAction() bool { return b >= ButtonA && b <= ButtonStart }

// Buttons is a snapshot of which inputs are held.
type Buttons struct {
	A, B, Start, Select   bool
	Up, Down, Left, Right bool
}

func buttonsFromMask(mask byte) Buttons {
	held := func(b Button) bool { return mask&b.mask() != 0 }
	return Buttons{
		A: held(ButtonA), B: held(ButtonB), Start: held(ButtonStart), Select: held(ButtonSelect),
		Up: held(ButtonUp), Down: held(ButtonDown), Left: held(ButtonLeft), Right: held(ButtonRight),
	}
}

// P1 group-select values: a cleared bit selects that group.
const (
	selectDpad    byte = 0x20
	selectButtons byte = 0x10
)

// JoypadRegister computes the value a read of P1 (0xFF00) returns for the
// given pressed mask and the group-select bits last written to P1. Inputs are
// active low; bits 6-7 always read as 1.
func JoypadRegister(pressed, p1 byte) byte {
	out := byte(0xC0) | (p1 & 0x30) | 0x0F
	if p1&0x10 == 0 {
		out &^= pressed & 0x0F
	}
	if p1&0x20 == 0 {
		out &^= pressed >> 4
	}
	return out
}
