// Package drum implements a single-voice percussive drum synthesis engine.
//
// A drum hit is built from three layers: a transient noise burst (impact),
// a pitched resonant body driven by a Karplus-Strong style feedback delay
// loop, and a snare noise layer that excites the resonator alongside the
// impact. Each layer is shaped by an ADSR(H) envelope and a peaking
// equalizer; the resonator's feedback tap runs through a one-pole damping
// lowpass that gives the loop its decaying, pitched character.
//
// The engine is strictly single-threaded and allocation-free in the
// processing path: one Voice owns all mutable state, processes one sample
// at a time, and consumes already-smoothed control values from a
// ControlSource. Malformed control values are clamped, never rejected.
package drum
