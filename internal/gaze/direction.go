package gaze

import "encoding/json"

// Direction is the coarse direction a gaze point resolves to.
type Direction int32

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var directionNames = [...]string{
	None:  "none",
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if d < None || d > Right {
		return "none"
	}
	return directionNames[d]
}

// ParseDirection accepts exactly the lower-case names used on the wire.
// "none", other spellings and unknown names report ok=false.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return None, false
}

// MarshalJSON encodes None as null, matching the control page's expectations.
func (d Direction) MarshalJSON() ([]byte, error) {
	if d == None {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}
