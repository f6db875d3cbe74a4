package drum

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// maxCutoff bounds the normalized cutoff just below the tan prewarp
// singularity at 0.5; past it g changes sign and the recursion pole
// leaves the unit circle.
const maxCutoff = 0.4995

// OnePole is a single-pole filter in a trapezoidal-integrator topology,
// used as the damping element in the resonator feedback loop. Cutoff is
// normalized frequency, clamped to the stable [0, 0.5) quadrant; the
// same process routine serves both the lowpass and highpass coefficient
// sets.
type OnePole struct {
	a0 float64
	b1 float64
	z1 float64
}

// NewOnePole returns a filter with pass-through coefficients and zero state.
func NewOnePole() *OnePole {
	return &OnePole{a0: 1}
}

// SetCutoff recomputes the coefficients for the given normalized cutoff.
func (f *OnePole) SetCutoff(cutoff float64, lowpass bool) {
	g := math.Tan(math.Pi * core.Clamp(cutoff, 0, maxCutoff))

	var a1 float64
	if lowpass {
		a1 = (g - 1) / (g + 1)
	} else {
		a1 = (1 - g) / (1 + g)
	}

	f.a0 = (1 + a1) / 2
	f.b1 = a1
}

// Process filters one sample.
func (f *OnePole) Process(x float64) float64 {
	y := f.a0*x + f.a0*f.z1
	f.z1 = x - y*f.b1

	return y
}

// Reset clears the delay register. Coefficients persist, so the next
// Process call reuses the last configured response.
func (f *OnePole) Reset() {
	f.z1 = 0
}
