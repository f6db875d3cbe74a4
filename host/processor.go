// Package host adapts the drum engine to a host-facing lifecycle without
// leaking host types into the core. A host integration (plugin wrapper,
// standalone app, offline renderer) drives the Processor interface and
// delivers note events and parameter targets through it.
package host

import "github.com/cwbudde/algo-drums/drum"

// smoothingMs matches the host automation smoothing window.
const smoothingMs = 50.0

// Processor is the fixed lifecycle boundary an audio host drives.
type Processor interface {
	// Initialize must be called before processing and on every
	// sample-rate change.
	Initialize(sampleRate float64) error
	// ProcessBlock renders one sample per slot of out, identical across
	// channels, applying events at their sample offsets.
	ProcessBlock(out [][]float64, events []drum.NoteEvent)
	// Reset returns the processor to silence. Callable at any time.
	Reset()
}

// DrumProcessor implements Processor by delegating into a drum.Voice and
// owning the parameter smoothing on its behalf.
type DrumProcessor struct {
	voice    *drum.Voice
	controls *drum.SmoothedControls
}

var _ Processor = (*DrumProcessor)(nil)

// New creates a processor at a provisional 44.1 kHz; the host's
// Initialize call installs the real rate.
func New(noise drum.Noise) (*DrumProcessor, error) {
	voice, err := drum.NewVoice(44100, noise)
	if err != nil {
		return nil, err
	}

	return &DrumProcessor{
		voice:    voice,
		controls: drum.NewSmoothedControls(44100, smoothingMs),
	}, nil
}

// Initialize propagates the sample rate into the voice and the smoothing
// coefficients, snapping controls so nothing glides across the boundary.
func (p *DrumProcessor) Initialize(sampleRate float64) error {
	if err := p.voice.Initialize(sampleRate, p.controls.Targets()); err != nil {
		return err
	}

	p.controls.SetSampleRate(sampleRate, smoothingMs)
	p.controls.Snap()

	return nil
}

// ProcessBlock renders the block through the voice.
func (p *DrumProcessor) ProcessBlock(out [][]float64, events []drum.NoteEvent) {
	p.voice.ProcessBlock(out, events, p.controls)
}

// Reset silences the voice and snaps controls to their targets.
func (p *DrumProcessor) Reset() {
	p.voice.Reset()
	p.controls.Snap()
}

// SetControls installs new parameter targets from the host; values are
// smoothed toward the targets over the smoothing window.
func (p *DrumProcessor) SetControls(f drum.ControlFrame) {
	p.controls.SetTargets(f)
}

// Controls returns the current parameter targets.
func (p *DrumProcessor) Controls() drum.ControlFrame {
	return p.controls.Targets()
}

// Voice exposes the underlying engine for direct note control.
func (p *DrumProcessor) Voice() *drum.Voice {
	return p.voice
}
