package ticker

// Oscillator moves a position between 0 and Max by Step on every tick,
// reversing direction exactly at either end. It does not move while hovered.
type Oscillator struct {
	Max     int
	Step    int
	Pos     int
	Hovered bool
	back    bool
}

// Tick advances the position and returns it.
func (o *Oscillator) Tick() int {
	if o.Max <= 0 {
		o.Pos = 0
		return 0
	}
	if o.Hovered {
		return o.Pos
	}
	step := max(o.Step, 1)
	if o.back {
		o.Pos -= step
	} else {
		o.Pos += step
	}
	switch {
	case o.Pos >= o.Max:
		o.Pos, o.back = o.Max, true
	case o.Pos <= 0:
		o.Pos, o.back = 0, false
	}
	return o.Pos
}

// SetMax changes the upper bound, keeping the position inside it.
func (o *Oscillator) SetMax(m int) {
	o.Max = max(m, 0)
	o.Pos = min(o.Pos, o.Max)
	if o.Pos == o.Max && o.Max > 0 {
		o.back = true
	}
}
