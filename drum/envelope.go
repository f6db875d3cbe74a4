package drum

import "math"

// Stage identifies the current envelope segment.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageHold
	StageDecay
	StageSustain
	StageRelease
)

// releaseFloor terminates the proportional release segment. Below this
// level the envelope snaps to exact zero and goes Idle, so a release
// always finishes in a finite number of samples instead of decaying
// asymptotically into denormal territory.
const releaseFloor = 0.001

// Envelope is an ADSR generator with an optional hold segment between
// attack and decay. Attack and decay move linearly, release decays
// proportionally (exponential shape). The output level is always in [0, 1].
type Envelope struct {
	stage        Stage
	attackTime   float64
	decayTime    float64
	sustainLevel float64
	releaseTime  float64
	holdTime     float64
	level        float64
	sampleRate   float64
	holdLeft     int
}

// NewEnvelope returns an idle envelope at the given sample rate.
func NewEnvelope(sampleRate float64) *Envelope {
	return &Envelope{
		stage:        StageIdle,
		attackTime:   0.01,
		decayTime:    0.1,
		sustainLevel: 0.5,
		releaseTime:  0.1,
		sampleRate:   sampleRate,
	}
}

// SetParameters overwrites the timing and level targets. The current stage
// and level are untouched, so parameters can be updated every block while
// a note is sounding.
func (e *Envelope) SetParameters(attack, decay, sustain, release, hold float64) {
	e.attackTime = attack
	e.decayTime = decay
	e.sustainLevel = sustain
	e.releaseTime = release
	e.holdTime = hold
}

// SetSampleRate updates the sample rate. Valid only between notes or at
// initialize/reset boundaries.
func (e *Envelope) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
}

// NoteOn restarts the envelope from zero in the attack stage and reloads
// the hold counter from the current hold time.
func (e *Envelope) NoteOn() {
	e.stage = StageAttack
	e.level = 0
	e.holdLeft = int(math.Round(e.holdTime * e.sampleRate))
}

// NoteOff redirects the envelope into release. A no-op while idle.
func (e *Envelope) NoteOff() {
	if e.stage != StageIdle {
		e.stage = StageRelease
	}
}

// Advance produces the next amplitude sample and performs any due stage
// transition. Zero-duration segments are guarded by flooring the
// per-segment sample count at 1.
func (e *Envelope) Advance() float64 {
	switch e.stage {
	case StageAttack:
		e.level += 1 / math.Max(e.attackTime*e.sampleRate, 1)
		if e.level >= 1 {
			e.level = 1
			if e.holdTime > 0 {
				e.stage = StageHold
			} else {
				e.stage = StageDecay
			}
		}
		return e.level
	case StageHold:
		if e.holdLeft > 0 {
			e.holdLeft--
		} else {
			e.stage = StageDecay
		}
		return 1
	case StageDecay:
		e.level -= (1 - e.sustainLevel) / math.Max(e.decayTime*e.sampleRate, 1)
		if e.level <= e.sustainLevel {
			e.level = e.sustainLevel
			e.stage = StageSustain
		}
		return e.level
	case StageSustain:
		return e.sustainLevel
	case StageRelease:
		e.level -= e.level / math.Max(e.releaseTime*e.sampleRate, 1)
		if e.level <= releaseFloor {
			e.level = 0
			e.stage = StageIdle
		}
		return e.level
	default:
		return 0
	}
}

// IsActive reports whether the envelope is in any stage other than idle.
func (e *Envelope) IsActive() bool {
	return e.stage != StageIdle
}

// Stage returns the current stage.
func (e *Envelope) Stage() Stage {
	return e.stage
}

// Level returns the current output level.
func (e *Envelope) Level() float64 {
	return e.level
}

// Reset forces the envelope to idle with zero level and hold counter.
// Timing parameters persist.
func (e *Envelope) Reset() {
	e.stage = StageIdle
	e.level = 0
	e.holdLeft = 0
}
