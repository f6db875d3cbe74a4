package drum

import (
	"fmt"
	"math"

	"github.com/meko-christian/algo-approx"
)

// ln10over20 converts decibels to a natural exponent: 10^(db/20) = e^(db*ln10/20).
const ln10over20 = math.Ln10 / 20

// dbToGain converts decibels to linear amplitude using the fast
// exponential; it runs once per sample on the master gain.
func dbToGain(db float64) float64 {
	return approx.FastExp(db * ln10over20)
}

// MIDINoteToFreq returns the equal-tempered frequency of a MIDI note
// number (A4 = note 69 = 440 Hz).
func MIDINoteToFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// Voice is the complete single-voice drum engine: two excitation layers
// (impact and snare) driving a Karplus-Strong resonator, each layer shaped
// by an envelope and a peaking EQ. A Voice owns all of its mutable state
// exclusively and processes synchronously, one sample at a time.
type Voice struct {
	sampleRate float64
	noise      Noise

	impactEnv *Envelope
	impactEQ  *PeakEQ

	damping     *OnePole
	resonator   *Resonator
	resonatorEQ *PeakEQ

	snareEnv *Envelope
	snareEQ  *PeakEQ

	noteID   int
	noteFreq float64
	playing  bool
}

// NewVoice creates a silent voice. The noise source is injected so tests
// can use a seeded generator; passing nil selects the production xorshift
// source.
func NewVoice(sampleRate float64, noise Noise) (*Voice, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("drum: sample rate must be > 0: %v", sampleRate)
	}
	if noise == nil {
		noise = NewXorShiftNoise()
	}

	damping := NewOnePole()
	v := &Voice{
		sampleRate:  sampleRate,
		noise:       noise,
		impactEnv:   NewEnvelope(sampleRate),
		impactEQ:    NewPeakEQ(),
		damping:     damping,
		resonator:   NewResonator(damping),
		resonatorEQ: NewPeakEQ(),
		snareEnv:    NewEnvelope(sampleRate),
		snareEQ:     NewPeakEQ(),
		noteFreq:    1,
	}

	return v, nil
}

// Initialize propagates a new sample rate into both envelopes and
// reconfigures all three equalizers from the given control values. Must be
// called before processing and again on every sample-rate change; not
// valid mid-block.
func (v *Voice) Initialize(sampleRate float64, controls ControlFrame) error {
	if sampleRate <= 0 {
		return fmt.Errorf("drum: sample rate must be > 0: %v", sampleRate)
	}

	v.sampleRate = sampleRate
	v.impactEnv.SetSampleRate(sampleRate)
	v.snareEnv.SetSampleRate(sampleRate)

	c := controls.Clamp()
	v.impactEQ.Configure(c.ImpactEQFreq, c.ImpactEQGain, c.ImpactEQQ, sampleRate)
	v.resonatorEQ.Configure(c.ResonatorEQFreq, c.ResonatorEQGain, c.ResonatorEQQ, sampleRate)
	v.snareEQ.Configure(c.SnareEQFreq, c.SnareEQGain, c.SnareEQQ, sampleRate)

	return nil
}

// NoteOn records the note and retriggers both excitation envelopes. The
// engine is monophonic: a note-on while sounding restarts the same voice.
func (v *Voice) NoteOn(note int) {
	v.noteID = note
	v.noteFreq = MIDINoteToFreq(note)
	v.playing = true

	v.impactEnv.NoteOn()
	v.snareEnv.NoteOn()
}

// NoteOff releases both excitation envelopes if note matches the currently
// sounding note; other notes are ignored. The layers then ring out
// independently through their release segments.
func (v *Voice) NoteOff(note int) {
	if note != v.noteID {
		return
	}
	v.impactEnv.NoteOff()
	v.snareEnv.NoteOff()
}

// IsPlaying reports whether either excitation envelope is still active.
// Resonator energy does not keep a voice alive; only the excitation
// envelopes gate liveness.
func (v *Voice) IsPlaying() bool {
	return v.playing
}

// CurrentNote returns the most recently triggered note number.
func (v *Voice) CurrentNote() int {
	return v.noteID
}

// NoteFrequency returns the fundamental of the current note in Hz.
func (v *Voice) NoteFrequency() float64 {
	return v.noteFreq
}

// Reset returns the voice to silence: envelopes idle, filter histories
// zeroed, resonator buffer cleared with both cursors at zero. Safe to call
// at any time, including mid-note.
func (v *Voice) Reset() {
	v.noteID = 0
	v.noteFreq = 1
	v.playing = false

	v.impactEnv.Reset()
	v.snareEnv.Reset()

	v.impactEQ.Reset()
	v.resonatorEQ.Reset()
	v.snareEQ.Reset()
	v.damping.Reset()
	v.resonator.Reset()
}

// ProcessBlock renders len(out[0]) samples, writing the same mono signal
// to every channel of out. Note events are applied strictly in order, each
// at the sample index matching its offset; controls supplies one smoothed
// frame per sample. The call never blocks and never allocates.
func (v *Voice) ProcessBlock(out [][]float64, events []NoteEvent, controls ControlSource) {
	if len(out) == 0 || controls == nil {
		return
	}

	next := 0
	for i := range out[0] {
		frame := controls.Next().Clamp()

		if i == 0 {
			// Envelope timing follows the block-start control values; the
			// snare release is derived as half its decay, and both
			// percussive envelopes use zero sustain.
			v.impactEnv.SetParameters(frame.ImpactAttack, frame.ImpactDecay, 0, frame.ImpactRelease, frame.ImpactHold)
			v.snareEnv.SetParameters(frame.SnareAttack, frame.SnareDecay, 0, frame.SnareDecay*0.5, 0)
		}

		for next < len(events) && events[next].Offset <= i {
			ev := events[next]
			next++
			if ev.On {
				v.NoteOn(ev.Note)
			} else {
				v.NoteOff(ev.Note)
			}
		}

		impact := v.processImpact(frame)
		snare := v.processSnare(frame)
		resonance := v.processResonance(impact, snare, frame)

		sample := (impact + resonance) * dbToGain(frame.MasterGainDB)
		for ch := range out {
			out[ch][i] = sample
		}

		v.playing = v.impactEnv.IsActive() || v.snareEnv.IsActive()
	}
}

// processImpact renders the transient layer: a noise burst shaped by its
// envelope, level and tone EQ.
func (v *Voice) processImpact(frame ControlFrame) float64 {
	noise := v.noise.Next()
	env := v.impactEnv.Advance()

	v.impactEQ.Configure(frame.ImpactEQFreq, frame.ImpactEQGain, frame.ImpactEQQ, v.sampleRate)

	return v.impactEQ.Process(noise * env * frame.ImpactLevel)
}

// processSnare renders the snare-wire layer the same way; its output only
// reaches the mix through the resonator.
func (v *Voice) processSnare(frame ControlFrame) float64 {
	noise := v.noise.Next()
	env := v.snareEnv.Advance()

	v.snareEQ.Configure(frame.SnareEQFreq, frame.SnareEQGain, frame.SnareEQQ, v.sampleRate)

	return v.snareEQ.Process(noise * env * frame.SnareLevel)
}

// processResonance feeds both excitations into the delay loop and shapes
// the raw loop output with the resonator level and tone EQ.
func (v *Voice) processResonance(impact, snare float64, frame ControlFrame) float64 {
	raw := v.resonator.ProcessSample(
		impact, snare,
		int(frame.ResonatorDelay),
		frame.ResonatorDamping,
		frame.ResonatorFeedback,
	)

	v.resonatorEQ.Configure(frame.ResonatorEQFreq, frame.ResonatorEQGain, frame.ResonatorEQQ, v.sampleRate)

	return v.resonatorEQ.Process(raw * frame.ResonatorLevel)
}
