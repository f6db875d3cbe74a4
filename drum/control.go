package drum

import "math"

// ControlSource feeds the engine one already-smoothed ControlFrame per
// sample. The engine and its source advance in lockstep with a single
// reader and writer, so no synchronization is involved.
type ControlSource interface {
	Next() ControlFrame
}

// StaticControls is a ControlSource that returns the same frame forever.
// Useful for tests and offline renders with fixed settings.
type StaticControls ControlFrame

// Next returns the fixed frame.
func (s StaticControls) Next() ControlFrame {
	return ControlFrame(s)
}

// SmoothedControls moves every control value toward its target with a
// one-pole lag, preventing zipper noise on parameter changes. One Next
// call advances the smoothing by one sample.
type SmoothedControls struct {
	current ControlFrame
	target  ControlFrame
	coeff   float64
}

// NewSmoothedControls returns a source at the default voicing with the
// given smoothing time constant in milliseconds.
func NewSmoothedControls(sampleRate, smoothingMs float64) *SmoothedControls {
	s := &SmoothedControls{
		current: DefaultControls(),
		target:  DefaultControls(),
	}
	s.SetSampleRate(sampleRate, smoothingMs)

	return s
}

// SetSampleRate recomputes the smoothing coefficient. Valid at
// initialize/reset boundaries only.
func (s *SmoothedControls) SetSampleRate(sampleRate, smoothingMs float64) {
	tau := smoothingMs / 1000 * sampleRate
	if tau < 1 {
		tau = 1
	}
	s.coeff = math.Exp(-1 / tau)
}

// SetTargets installs new target values. Targets are clamped to their
// valid ranges before smoothing begins.
func (s *SmoothedControls) SetTargets(f ControlFrame) {
	s.target = f.Clamp()
}

// Targets returns the current target frame.
func (s *SmoothedControls) Targets() ControlFrame {
	return s.target
}

// Snap jumps every value directly to its target, skipping the lag. Used
// on reset so a silent engine does not glide from stale values.
func (s *SmoothedControls) Snap() {
	s.current = s.target
}

// Next advances every control value one smoothing step toward its target
// and returns the frame.
func (s *SmoothedControls) Next() ControlFrame {
	k := 1 - s.coeff
	cur, tgt := &s.current, &s.target

	cur.MasterGainDB += (tgt.MasterGainDB - cur.MasterGainDB) * k

	cur.ImpactAttack += (tgt.ImpactAttack - cur.ImpactAttack) * k
	cur.ImpactHold += (tgt.ImpactHold - cur.ImpactHold) * k
	cur.ImpactDecay += (tgt.ImpactDecay - cur.ImpactDecay) * k
	cur.ImpactRelease += (tgt.ImpactRelease - cur.ImpactRelease) * k
	cur.ImpactLevel += (tgt.ImpactLevel - cur.ImpactLevel) * k
	cur.ImpactEQFreq += (tgt.ImpactEQFreq - cur.ImpactEQFreq) * k
	cur.ImpactEQGain += (tgt.ImpactEQGain - cur.ImpactEQGain) * k
	cur.ImpactEQQ += (tgt.ImpactEQQ - cur.ImpactEQQ) * k

	cur.ResonatorDelay += (tgt.ResonatorDelay - cur.ResonatorDelay) * k
	cur.ResonatorFeedback += (tgt.ResonatorFeedback - cur.ResonatorFeedback) * k
	cur.ResonatorDamping += (tgt.ResonatorDamping - cur.ResonatorDamping) * k
	cur.ResonatorLevel += (tgt.ResonatorLevel - cur.ResonatorLevel) * k
	cur.ResonatorEQFreq += (tgt.ResonatorEQFreq - cur.ResonatorEQFreq) * k
	cur.ResonatorEQGain += (tgt.ResonatorEQGain - cur.ResonatorEQGain) * k
	cur.ResonatorEQQ += (tgt.ResonatorEQQ - cur.ResonatorEQQ) * k

	cur.SnareAttack += (tgt.SnareAttack - cur.SnareAttack) * k
	cur.SnareDecay += (tgt.SnareDecay - cur.SnareDecay) * k
	cur.SnareLevel += (tgt.SnareLevel - cur.SnareLevel) * k
	cur.SnareEQFreq += (tgt.SnareEQFreq - cur.SnareEQFreq) * k
	cur.SnareEQGain += (tgt.SnareEQGain - cur.SnareEQGain) * k
	cur.SnareEQQ += (tgt.SnareEQQ - cur.SnareEQQ) * k

	return s.current
}
