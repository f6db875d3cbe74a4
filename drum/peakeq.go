package drum

import "math"

// PeakEQ is a second-order peaking equalizer (RBJ cookbook derivation)
// processed in direct form I. At zero gain it reduces to unity within
// floating-point precision.
type PeakEQ struct {
	a0, a1, a2 float64 // normalized feedforward
	b1, b2     float64 // normalized feedback

	x1, x2 float64
	y1, y2 float64
}

// NewPeakEQ returns an identity equalizer with zero history.
func NewPeakEQ() *PeakEQ {
	return &PeakEQ{a0: 1}
}

// Configure recomputes the coefficients for a peaking response at freq Hz
// with gain in dB and quality factor q. Degenerate inputs (non-positive
// rate, q, or a center at/above Nyquist) leave the previous response in
// place.
func (eq *PeakEQ) Configure(freq, gainDB, q, sampleRate float64) {
	if sampleRate <= 0 || q <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return
	}

	omega := 2 * math.Pi * freq / sampleRate
	alpha := math.Sin(omega) / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * math.Cos(omega)
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * math.Cos(omega)
	a2 := 1 - alpha/a

	eq.a0 = b0 / a0
	eq.a1 = b1 / a0
	eq.a2 = b2 / a0
	eq.b1 = a1 / a0
	eq.b2 = a2 / a0
}

// Process filters one sample and shifts the two-sample input and output
// history.
func (eq *PeakEQ) Process(x float64) float64 {
	y := eq.a0*x + eq.a1*eq.x1 + eq.a2*eq.x2 - eq.b1*eq.y1 - eq.b2*eq.y2

	eq.x2 = eq.x1
	eq.x1 = x
	eq.y2 = eq.y1
	eq.y1 = y

	return y
}

// Reset clears the filter history. Coefficients persist.
func (eq *PeakEQ) Reset() {
	eq.x1 = 0
	eq.x2 = 0
	eq.y1 = 0
	eq.y2 = 0
}
