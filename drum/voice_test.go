package drum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-drums/internal/testutil"
)

func newTestVoice(t *testing.T, seed int64) *Voice {
	t.Helper()
	v, err := NewVoice(44100, NewSeededNoise(seed))
	if err != nil {
		t.Fatalf("NewVoice() error = %v", err)
	}
	if err := v.Initialize(44100, DefaultControls()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return v
}

func renderMono(v *Voice, samples int, events []NoteEvent, controls ControlSource) []float64 {
	out := [][]float64{make([]float64, samples)}
	v.ProcessBlock(out, events, controls)
	return out[0]
}

func TestNewVoiceValidation(t *testing.T) {
	if _, err := NewVoice(0, nil); err == nil {
		t.Fatal("expected error for sample rate 0")
	}
	if _, err := NewVoice(-44100, nil); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
}

func TestMIDINoteToFreq(t *testing.T) {
	if got := MIDINoteToFreq(69); math.Abs(got-440) > 1e-9 {
		t.Fatalf("note 69 = %v Hz, want 440", got)
	}
	if got := MIDINoteToFreq(81); math.Abs(got-880) > 1e-9 {
		t.Fatalf("note 81 = %v Hz, want 880", got)
	}
	if got := MIDINoteToFreq(60); math.Abs(got-261.6255653) > 1e-6 {
		t.Fatalf("note 60 = %v Hz, want ~261.63", got)
	}
}

func TestVoiceSilentWithoutNoteOn(t *testing.T) {
	v := newTestVoice(t, 1)
	out := renderMono(v, 4096, nil, StaticControls(DefaultControls()))
	for i, s := range out {
		if s != 0 {
			t.Fatalf("sample %d = %v, want 0 with no note", i, s)
		}
	}
	if v.IsPlaying() {
		t.Fatal("IsPlaying true with no note")
	}
}

func TestVoiceEndToEndLiveness(t *testing.T) {
	v := newTestVoice(t, 42)

	out := renderMono(v, 44100, []NoteEvent{NoteOn(0, 60)}, StaticControls(DefaultControls()))
	testutil.RequireFinite(t, out)

	if peak := testutil.PeakAbs(out[:500]); peak == 0 {
		t.Fatal("no output within the first 500 samples of a note-on")
	}
	// Without a note-off the zero-sustain envelopes sit in Sustain, never
	// Idle, so the voice stays alive for the full second.
	if !v.IsPlaying() {
		t.Fatal("IsPlaying false after one second without note-off")
	}
	if v.CurrentNote() != 60 {
		t.Fatalf("CurrentNote = %d, want 60", v.CurrentNote())
	}
	if math.Abs(v.NoteFrequency()-MIDINoteToFreq(60)) > 1e-9 {
		t.Fatalf("NoteFrequency = %v", v.NoteFrequency())
	}
}

func TestVoiceNoteOffEndsLiveness(t *testing.T) {
	v := newTestVoice(t, 5)

	events := []NoteEvent{NoteOn(0, 60), NoteOff(2205, 60)}
	renderMono(v, 44100, events, StaticControls(DefaultControls()))

	// Impact release is 15 ms and the snare release 50 ms; both envelopes
	// are long idle after a second.
	if v.IsPlaying() {
		t.Fatal("IsPlaying true after both envelopes released")
	}
}

func TestVoiceNoteOffForOtherNoteIgnored(t *testing.T) {
	v := newTestVoice(t, 5)

	events := []NoteEvent{NoteOn(0, 60), NoteOff(100, 61)}
	renderMono(v, 22050, events, StaticControls(DefaultControls()))

	if !v.IsPlaying() {
		t.Fatal("note-off for a different note silenced the voice")
	}
}

func TestVoiceEventOffsetsAreSampleAccurate(t *testing.T) {
	v := newTestVoice(t, 9)

	const onAt = 1000
	out := renderMono(v, 4096, []NoteEvent{NoteOn(onAt, 60)}, StaticControls(DefaultControls()))

	for i := 0; i < onAt; i++ {
		if out[i] != 0 {
			t.Fatalf("sample %d = %v, want 0 before the note-on offset", i, out[i])
		}
	}
	if peak := testutil.PeakAbs(out[onAt : onAt+500]); peak == 0 {
		t.Fatal("no output after the note-on offset")
	}
}

func TestVoiceEventOffsetsOutsideBlock(t *testing.T) {
	v := newTestVoice(t, 4)

	// An offset at or past the block end never fires.
	out := renderMono(v, 256, []NoteEvent{NoteOn(256, 60)}, StaticControls(DefaultControls()))
	for i, s := range out {
		if s != 0 {
			t.Fatalf("sample %d = %v, want 0 for an event past the block end", i, s)
		}
	}
	if v.IsPlaying() {
		t.Fatal("event past the block end triggered the voice")
	}

	// A negative offset applies at the first sample.
	out = renderMono(v, 256, []NoteEvent{NoteOn(-5, 60)}, StaticControls(DefaultControls()))
	if peak := testutil.PeakAbs(out); peak == 0 {
		t.Fatal("negative-offset note-on produced no output")
	}
	if !v.IsPlaying() {
		t.Fatal("negative-offset note-on did not trigger the voice")
	}
}

func TestVoiceRetriggerRestartsEnvelopes(t *testing.T) {
	v := newTestVoice(t, 3)

	// Let the first hit decay into sustain-at-zero, then retrigger.
	renderMono(v, 22050, []NoteEvent{NoteOn(0, 60)}, StaticControls(DefaultControls()))
	tail := renderMono(v, 2048, []NoteEvent{NoteOn(0, 62)}, StaticControls(DefaultControls()))

	if peak := testutil.PeakAbs(tail[:500]); peak == 0 {
		t.Fatal("retrigger produced no fresh transient")
	}
	if v.CurrentNote() != 62 {
		t.Fatalf("CurrentNote = %d, want 62", v.CurrentNote())
	}
}

func TestVoiceChannelsIdentical(t *testing.T) {
	v := newTestVoice(t, 7)

	out := [][]float64{make([]float64, 8192), make([]float64, 8192)}
	v.ProcessBlock(out, []NoteEvent{NoteOn(0, 60)}, StaticControls(DefaultControls()))

	for i := range out[0] {
		if out[0][i] != out[1][i] {
			t.Fatalf("sample %d differs across channels: %v vs %v", i, out[0][i], out[1][i])
		}
	}
}

func TestVoiceDeterministicWithSeededNoise(t *testing.T) {
	a := newTestVoice(t, 42)
	b := newTestVoice(t, 42)

	events := []NoteEvent{NoteOn(0, 60), NoteOff(4410, 60)}
	outA := renderMono(a, 8820, events, StaticControls(DefaultControls()))
	outB := renderMono(b, 8820, events, StaticControls(DefaultControls()))

	testutil.RequireSliceNearlyEqual(t, outA, outB, 0)
}

func TestVoiceResetMidNote(t *testing.T) {
	v := newTestVoice(t, 13)

	renderMono(v, 4410, []NoteEvent{NoteOn(0, 60)}, StaticControls(DefaultControls()))
	v.Reset()

	if v.IsPlaying() {
		t.Fatal("IsPlaying true after Reset")
	}
	if v.CurrentNote() != 0 {
		t.Fatalf("CurrentNote = %d after Reset, want 0", v.CurrentNote())
	}
	if v.resonator.WritePos() != 0 || v.resonator.ReadPos() != 0 {
		t.Fatal("resonator cursors not zeroed by Reset")
	}
	for i, s := range v.resonator.buffer {
		if s != 0 {
			t.Fatalf("resonator buffer[%d] = %v after Reset", i, s)
		}
	}

	out := renderMono(v, 4096, nil, StaticControls(DefaultControls()))
	for i, s := range out {
		if s != 0 {
			t.Fatalf("sample %d = %v after Reset, want silence", i, s)
		}
	}
}

func TestVoiceResetWhileIdleIsSafe(t *testing.T) {
	v := newTestVoice(t, 1)
	v.Reset()
	v.Reset()
	if v.IsPlaying() {
		t.Fatal("IsPlaying true after Reset on idle voice")
	}
}

func TestVoiceInitializeRejectsBadRate(t *testing.T) {
	v := newTestVoice(t, 1)
	if err := v.Initialize(0, DefaultControls()); err == nil {
		t.Fatal("expected error for sample rate 0")
	}
}

func TestVoiceOutputBoundedUnderDefaults(t *testing.T) {
	v := newTestVoice(t, 21)

	out := renderMono(v, 88200, []NoteEvent{NoteOn(0, 60), NoteOff(44100, 60)}, StaticControls(DefaultControls()))
	testutil.RequireFinite(t, out)
	if peak := testutil.PeakAbs(out); peak > 10 {
		t.Fatalf("output peak = %v, unexpectedly hot", peak)
	}
}

func BenchmarkVoiceProcessBlock(b *testing.B) {
	v, err := NewVoice(44100, nil)
	if err != nil {
		b.Fatalf("NewVoice() error = %v", err)
	}
	if err := v.Initialize(44100, DefaultControls()); err != nil {
		b.Fatalf("Initialize() error = %v", err)
	}

	out := [][]float64{make([]float64, 512)}
	controls := StaticControls(DefaultControls())
	events := []NoteEvent{NoteOn(0, 60)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.ProcessBlock(out, events, controls)
	}
}
