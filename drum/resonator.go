package drum

import "github.com/cwbudde/algo-dsp/dsp/core"

// maxDelay is the resonator buffer capacity, roughly 93 ms at 44.1 kHz.
const maxDelay = 4096

// Resonator is the Karplus-Strong feedback loop at the heart of the drum
// body: a fixed-capacity circular buffer whose feedback tap is damped by a
// collaborating one-pole lowpass. The damping filter is owned by the
// caller; the resonator only drives it.
type Resonator struct {
	buffer   []float64
	writePos int
	readPos  int
	damping  *OnePole
}

// NewResonator returns a silent resonator using the given damping filter.
func NewResonator(damping *OnePole) *Resonator {
	return &Resonator{
		buffer:  make([]float64, maxDelay),
		damping: damping,
	}
}

// ProcessSample advances the loop by one sample. The two excitation inputs
// are already enveloped and leveled; delaySamples is clamped to the buffer
// capacity, damping selects the feedback lowpass cutoff (1 - damping,
// held inside the filter's stable range), and feedback scales the
// filtered tap. The read happens strictly before the
// write so a delay of zero feeds the previous generation, never the sample
// being produced.
func (r *Resonator) ProcessSample(impact, snare float64, delaySamples int, damping, feedback float64) float64 {
	d := int(core.Clamp(float64(delaySamples), 0, maxDelay-1))

	r.readPos = (r.writePos + maxDelay - d) % maxDelay
	delayed := r.buffer[r.readPos]

	r.damping.SetCutoff(1-damping, true)
	filtered := r.damping.Process(delayed)

	sample := core.FlushDenormals(impact + snare + filtered*feedback)

	r.buffer[r.writePos] = sample
	r.writePos = (r.writePos + 1) % maxDelay

	return sample
}

// Capacity returns the buffer size in samples.
func (r *Resonator) Capacity() int {
	return len(r.buffer)
}

// WritePos returns the current write cursor.
func (r *Resonator) WritePos() int {
	return r.writePos
}

// ReadPos returns the read cursor computed by the last ProcessSample.
func (r *Resonator) ReadPos() int {
	return r.readPos
}

// Reset clears the buffer and returns both cursors to zero. The damping
// filter is left to its owner.
func (r *Resonator) Reset() {
	for i := range r.buffer {
		r.buffer[i] = 0
	}
	r.writePos = 0
	r.readPos = 0
}
