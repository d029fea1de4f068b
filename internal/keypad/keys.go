// Package keypad turns single key presses on the controlling terminal into
// manual overrides: arrows or WASD hold a direction, space lets go, Z/X are
// A/B, Enter is Start, Backspace is Select, T toggles tracking and Q quits.
package keypad

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
)

// ErrQuit is returned by Run when the quit key is pressed.
var ErrQuit = errors.New("keypad: quit requested")

// Controller is what key presses act on.
type Controller interface {
	Press(d gaze.Direction)
	Release()
	Button(b emu.Button) bool
	Toggle() bool
}

type actionKind int

const (
	actPress actionKind = iota
	actRelease
	actButton
	actToggle
	actQuit
)

type action struct {
	kind   actionKind
	dir    gaze.Direction
	button emu.Button
}

var arrows = map[byte]gaze.Direction{'A': gaze.Up, 'B': gaze.Down, 'C': gaze.Right, 'D': gaze.Left}

// decode maps a chunk of terminal input to actions. Unknown bytes and
// incomplete escape sequences are dropped.
func decode(buf []byte) []action {
	var acts []action
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		switch c {
		case 0x1b:
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				if d, ok := arrows[buf[i+2]]; ok {
					acts = append(acts, action{kind: actPress, dir: d})
				}
				i += 2
			}
		case 'w', 'W':
			acts = append(acts, action{kind: actPress, dir: gaze.Up})
		case 's', 'S':
			acts = append(acts, action{kind: actPress, dir: gaze.Down})
		case 'a', 'A':
			acts = append(acts, action{kind: actPress, dir: gaze.Left})
		case 'd', 'D':
			acts = append(acts, action{kind: actPress, dir: gaze.Right})
		case ' ':
			acts = append(acts, action{kind: actRelease})
		case 'z', 'Z':
			acts = append(acts, action{kind: actButton, button: emu.ButtonA})
		case 'x', 'X':
			acts = append(acts, action{kind: actButton, button: emu.ButtonB})
		case '\r', '\n':
			acts = append(acts, action{kind: actButton, button: emu.ButtonStart})
		case 0x7f, 0x08:
			acts = append(acts, action{kind: actButton, button: emu.ButtonSelect})
		case 't', 'T':
			acts = append(acts, action{kind: actToggle})
		case 'q', 'Q', 0x03:
			acts = append(acts, action{kind: actQuit})
		}
	}
	return acts
}

// apply runs acts against ctl and reports whether quit was among them.
func apply(ctl Controller, acts []action) (quit bool) {
	for _, a := range acts {
		switch a.kind {
		case actPress:
			ctl.Press(a.dir)
		case actRelease:
			ctl.Release()
		case actButton:
			ctl.Button(a.button)
		case actToggle:
			ctl.Toggle()
		case actQuit:
			return true
		}
	}
	return false
}
