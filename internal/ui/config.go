package ui

// Config contains window settings.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor
	HUD   bool   // start with the status overlay shown
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gazeboy"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
}
