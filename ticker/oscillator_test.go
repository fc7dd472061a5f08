package ticker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ticks(o *Oscillator, n int) []int {
	var got []int
	for range n {
		got = append(got, o.Tick())
	}
	return got
}

func TestOscillator(t *testing.T) {
	testCases := []struct {
		name string
		osc  Oscillator
		n    int
		want []int
	}{
		{"bounces", Oscillator{Max: 3, Step: 1}, 8, []int{1, 2, 3, 2, 1, 0, 1, 2}},
		{"clamps at the ends", Oscillator{Max: 3, Step: 2}, 5, []int{2, 3, 1, 0, 2}},
		{"zero step moves by one", Oscillator{Max: 2}, 3, []int{1, 2, 1}},
		{"hovered holds", Oscillator{Max: 3, Step: 1, Pos: 2, Hovered: true}, 3, []int{2, 2, 2}},
		{"empty", Oscillator{Step: 1}, 3, []int{0, 0, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ticks(&tc.osc, tc.n)); diff != "" {
				t.Errorf("Tick() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOscillator_HoverResumes(t *testing.T) {
	o := &Oscillator{Max: 4, Step: 1}
	ticks(o, 4) // at the top
	o.Hovered = true
	ticks(o, 2)
	o.Hovered = false
	if got := o.Tick(); got != 3 {
		t.Errorf("Tick() after hover = %d, want 3 (moving back)", got)
	}
}

func TestOscillator_SetMax(t *testing.T) {
	o := &Oscillator{Max: 10, Step: 1, Pos: 8}
	o.SetMax(5)
	if o.Pos != 5 {
		t.Errorf("Pos = %d, want 5", o.Pos)
	}
	if got := o.Tick(); got != 4 {
		t.Errorf("Tick() = %d, want 4", got)
	}
	o.SetMax(-3)
	if o.Max != 0 || o.Pos != 0 {
		t.Errorf("SetMax(-3) = max %d pos %d, want 0 0", o.Max, o.Pos)
	}
}
