package leftright

// P returns the mark for a passing test. Off a terminal it is a plain ".".
// On a terminal the dot is green, and once the row holds as many dots as
// the right column allows the dot starts a new row instead.
//
// The wrap decision depends on every previous call, so P must be called
// exactly once per passing test, in execution order.
func (r *Renderer) P() string {
	if !r.interactive {
		return "."
	}
	dot := Paint(r.palette, Green, ".")

	maxDots := r.geo.RightSideWidth() - RightMargin - MidSeparator
	if maxDots < 1 {
		return dot
	}

	r.state.Dots++
	if r.state.Dots >= maxDots {
		r.state.Dots = 1
		return "\n" + dot
	}
	return dot
}
