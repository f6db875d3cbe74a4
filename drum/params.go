package drum

import "github.com/cwbudde/algo-dsp/dsp/core"

// ControlFrame is one sample's worth of already-smoothed control values.
// The engine consumes exactly one frame per output sample and never reads
// raw parameter storage in the processing path.
type ControlFrame struct {
	MasterGainDB float64

	// Impact layer: the transient noise burst mixed directly into the
	// output and fed into the resonator.
	ImpactAttack  float64 // seconds
	ImpactHold    float64 // seconds
	ImpactDecay   float64 // seconds
	ImpactRelease float64 // seconds
	ImpactLevel   float64
	ImpactEQFreq  float64 // Hz
	ImpactEQGain  float64 // dB
	ImpactEQQ     float64

	// Resonator: the Karplus-Strong body.
	ResonatorDelay    float64 // samples, the drum head tension
	ResonatorFeedback float64 // negative, controls sustain
	ResonatorDamping  float64
	ResonatorLevel    float64
	ResonatorEQFreq   float64 // Hz
	ResonatorEQGain   float64 // dB
	ResonatorEQQ      float64

	// Snare layer: noise fed through the resonator. Its release is derived
	// as half the decay; it has no hold and no sustain.
	SnareAttack float64 // seconds
	SnareDecay  float64 // seconds
	SnareLevel  float64
	SnareEQFreq float64 // Hz
	SnareEQGain float64 // dB
	SnareEQQ    float64
}

// DefaultControls returns the stock drum voicing.
func DefaultControls() ControlFrame {
	return ControlFrame{
		MasterGainDB: -6,

		ImpactAttack:  0.0005,
		ImpactHold:    0,
		ImpactDecay:   0.02,
		ImpactRelease: 0.015,
		ImpactLevel:   0.8,
		ImpactEQFreq:  500,
		ImpactEQGain:  3,
		ImpactEQQ:     1,

		ResonatorDelay:    44,
		ResonatorFeedback: -0.7,
		ResonatorDamping:  0.5,
		ResonatorLevel:    0.8,
		ResonatorEQFreq:   800,
		ResonatorEQGain:   0,
		ResonatorEQQ:      1,

		SnareAttack: 0.001,
		SnareDecay:  0.1,
		SnareLevel:  0.3,
		SnareEQFreq: 2000,
		SnareEQGain: 6,
		SnareEQQ:    1,
	}
}

// Clamp folds every field into its valid control range. Out-of-range
// values degrade into stable behavior instead of being rejected.
func (c ControlFrame) Clamp() ControlFrame {
	c.MasterGainDB = core.Clamp(c.MasterGainDB, -30, 6)

	c.ImpactAttack = core.Clamp(c.ImpactAttack, 0.0001, 0.01)
	c.ImpactHold = core.Clamp(c.ImpactHold, 0, 0.01)
	c.ImpactDecay = core.Clamp(c.ImpactDecay, 0.01, 0.03)
	c.ImpactRelease = core.Clamp(c.ImpactRelease, 0.01, 0.03)
	c.ImpactLevel = core.Clamp(c.ImpactLevel, 0, 1)
	c.ImpactEQFreq = core.Clamp(c.ImpactEQFreq, 100, 5000)
	c.ImpactEQGain = core.Clamp(c.ImpactEQGain, -12, 12)
	c.ImpactEQQ = core.Clamp(c.ImpactEQQ, 0.1, 10)

	c.ResonatorDelay = core.Clamp(c.ResonatorDelay, 5, 200)
	c.ResonatorFeedback = core.Clamp(c.ResonatorFeedback, -0.99, -0.3)
	c.ResonatorDamping = core.Clamp(c.ResonatorDamping, 0.1, 0.9)
	c.ResonatorLevel = core.Clamp(c.ResonatorLevel, 0, 1)
	c.ResonatorEQFreq = core.Clamp(c.ResonatorEQFreq, 100, 5000)
	c.ResonatorEQGain = core.Clamp(c.ResonatorEQGain, -12, 12)
	c.ResonatorEQQ = core.Clamp(c.ResonatorEQQ, 0.1, 10)

	c.SnareAttack = core.Clamp(c.SnareAttack, 0.0001, 0.01)
	c.SnareDecay = core.Clamp(c.SnareDecay, 0.01, 0.5)
	c.SnareLevel = core.Clamp(c.SnareLevel, 0, 1)
	c.SnareEQFreq = core.Clamp(c.SnareEQFreq, 500, 10000)
	c.SnareEQGain = core.Clamp(c.SnareEQGain, 0, 12)
	c.SnareEQQ = core.Clamp(c.SnareEQQ, 0.1, 5)

	return c
}
