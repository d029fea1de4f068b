package gaze

import (
	"encoding/json"
	"testing"
)

var fullHD = Classifier{Width: 1920, Height: 1080, DeadZone: 100}

func TestClassify_FullHDScenarios(t *testing.T) {
	cases := []struct {
		x, y float64
		want Direction
	}{
		{960, 540, None},
		{1200, 540, Right},
		{960, 300, Up},
		{960, 541, None},
		{700, 540, Left},
		{960, 800, Down},
		{1059, 639, None},  // just inside both edges
		{1060, 540, Right}, // boundary is exclusive
		{-5000, 540, Left}, // off-screen coordinates are not clamped
		{960, 9000, Down},
	}
	for _, c := range cases {
		if got := fullHD.Classify(Point{X: c.x, Y: c.y}); got != c.want {
			t.Fatalf("Classify(%v,%v) got %v want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestClassify_DeadZoneIsNone(t *testing.T) {
	c := fullHD.Center()
	for dx := -99.0; dx <= 99; dx += 9 {
		for dy := -99.0; dy <= 99; dy += 9 {
			if got := fullHD.Classify(Point{X: c.X + dx, Y: c.Y + dy}); got != None {
				t.Fatalf("offset (%v,%v) got %v want none", dx, dy, got)
			}
		}
	}
}

func TestClassify_DominantAxis(t *testing.T) {
	c := fullHD.Center()
	for d := 101.0; d < 900; d += 37 {
		off := d / 2
		if got := fullHD.Classify(Point{X: c.X + d, Y: c.Y + off}); got != Right {
			t.Fatalf("dx=%v dy=%v got %v want right", d, off, got)
		}
		if got := fullHD.Classify(Point{X: c.X - d, Y: c.Y - off}); got != Left {
			t.Fatalf("dx=%v dy=%v got %v want left", -d, -off, got)
		}
		if got := fullHD.Classify(Point{X: c.X + off, Y: c.Y + d}); got != Down {
			t.Fatalf("dx=%v dy=%v got %v want down", off, d, got)
		}
		if got := fullHD.Classify(Point{X: c.X - off, Y: c.Y - d}); got != Up {
			t.Fatalf("dx=%v dy=%v got %v want up", -off, -d, got)
		}
	}
}

func TestClassify_DiagonalTieIsVertical(t *testing.T) {
	c := fullHD.Center()
	for _, d := range []float64{100, 150, 400} {
		for _, sx := range []float64{-1, 1} {
			for _, sy := range []float64{-1, 1} {
				got := fullHD.Classify(Point{X: c.X + sx*d, Y: c.Y + sy*d})
				want := Down
				if sy < 0 {
					want = Up
				}
				if got != want {
					t.Fatalf("diagonal (%v,%v) got %v want %v", sx*d, sy*d, got, want)
				}
			}
		}
	}
}

func TestClassify_ZeroDeadZone(t *testing.T) {
	// Nothing is strictly less than zero, so even the centre resolves.
	if got := Classify(10, 10, 20, 20, 0); got != Up {
		t.Fatalf("centre with zero dead zone got %v want up", got)
	}
}

func TestDirection_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Direction{"a": None, "b": Left})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"a":null,"b":"left"}` {
		t.Fatalf("got %s", b)
	}
}

func TestParseDirection(t *testing.T) {
	if d, ok := ParseDirection("right"); !ok || d != Right {
		t.Fatalf("ParseDirection(right) got %v %v", d, ok)
	}
	for _, s := range []string{"", "none", "diagonal", "UP", "Right", " right "} {
		if _, ok := ParseDirection(s); ok {
			t.Fatalf("ParseDirection(%q) accepted", s)
		}
	}
}
