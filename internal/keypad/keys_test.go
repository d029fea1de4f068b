package keypad

import (
	"reflect"
	"testing"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
)

type recordingController struct {
	log []string
}

func (r *recordingController) Press(d gaze.Direction) { r.log = append(r.log, "press "+d.String()) }
func (r *recordingController) Release()               { r.log = append(r.log, "release") }
func (r *recordingController) Button(b emu.Button) bool {
	r.log = append(r.log, "button "+b.String())
	return true
}
func (r *recordingController) Toggle() bool {
	r.log = append(r.log, "toggle")
	return true
}

func TestDecode_Arrows(t *testing.T) {
	ctl := &recordingController{}
	apply(ctl, decode([]byte("\x1b[A\x1b[C\x1bOB\x1b[D")))
	want := []string{"press up", "press right", "press down", "press left"}
	if !reflect.DeepEqual(ctl.log, want) {
		t.Fatalf("got %v want %v", ctl.log, want)
	}
}

func TestDecode_Keys(t *testing.T) {
	ctl := &recordingController{}
	quit := apply(ctl, decode([]byte("wSz x\r\x7ft?")))
	want := []string{
		"press up", "press down", "button a", "release", "button b",
		"button start", "button select", "toggle",
	}
	if quit {
		t.Fatalf("quit reported without q")
	}
	if !reflect.DeepEqual(ctl.log, want) {
		t.Fatalf("got %v want %v", ctl.log, want)
	}
}

func TestDecode_QuitStopsApplying(t *testing.T) {
	ctl := &recordingController{}
	if !apply(ctl, decode([]byte("dqz"))) {
		t.Fatalf("quit not reported")
	}
	if !reflect.DeepEqual(ctl.log, []string{"press right"}) {
		t.Fatalf("actions after quit ran: %v", ctl.log)
	}
}

func TestDecode_TruncatedEscape(t *testing.T) {
	if acts := decode([]byte("\x1b[")); len(acts) != 0 {
		t.Fatalf("truncated escape decoded to %v", acts)
	}
}
