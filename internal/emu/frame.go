package emu

// DMG grey shades, lightest to darkest.
var shades = [4][3]byte{
	{0xFF, 0xFF, 0xFF},
	{0xC0, 0xC0, 0xC0},
	{0x60, 0x60, 0x60},
	{0x00, 0x00, 0x00},
}

type rect struct{ x0, y0, x1, y1 int }

// Where each input is drawn on the 160x144 screen.
var buttonRects = [...]rect{
	ButtonRight:  {48, 64, 64, 80},
	ButtonLeft:   {16, 64, 32, 80},
	ButtonUp:     {32, 48, 48, 64},
	ButtonDown:   {32, 80, 48, 96},
	ButtonA:      {120, 60, 136, 76},
	ButtonB:      {96, 72, 112, 88},
	ButtonSelect: {56, 116, 76, 122},
	ButtonStart:  {84, 116, 104, 122},
}

var dpadHub = rect{32, 64, 48, 80}

// render redraws the joypad view and a frame-progress marker on the bottom
// rows. Callers must not hold m.mu.
func (m *Machine) render() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.held = buttonsFromMask(m.pressed)
	m.fill(rect{0, 0, ScreenWidth, ScreenHeight}, 0)
	if m.stopped || !m.started {
		return
	}

	m.fill(dpadHub, 2)
	for b, r := range buttonRects {
		shade := 1
		if m.pressed&Button(b).mask() != 0 {
			shade = 3
		}
		m.fill(r, shade)
	}

	x := int(m.frames.Load() % ScreenWidth)
	m.fill(rect{x, ScreenHeight - 4, x + 1, ScreenHeight}, 2)
}

func (m *Machine) fill(r rect, shade int) {
	c := shades[shade]
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			i := (y*ScreenWidth + x) * 4
			m.fb[i+0], m.fb[i+1], m.fb[i+2], m.fb[i+3] = c[0], c[1], c[2], 0xFF
		}
	}
}
