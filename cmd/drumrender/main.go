// Command drumrender renders a single drum hit offline and prints
// time-domain statistics of the result. With -out it also writes the
// rendered samples as raw 32-bit float little-endian mono PCM.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"

	timestats "github.com/cwbudde/algo-dsp/stats/time"

	"github.com/cwbudde/algo-drums/drum"
	"github.com/cwbudde/algo-drums/host"
)

func main() {
	note := flag.Int("note", 60, "MIDI note to trigger")
	duration := flag.Float64("duration", 2.0, "Render duration in seconds")
	releaseAfter := flag.Float64("release-after", 0.5, "Seconds before note-off")
	sampleRate := flag.Int("sample-rate", 44100, "Render sample rate")
	blockSize := flag.Int("block-size", 512, "Render block size")
	seed := flag.Int64("seed", 0, "Noise seed; 0 uses the default generator")
	outPath := flag.String("out", "", "Optional output path for raw float32 LE mono PCM")

	masterGain := flag.Float64("master-gain", -6, "Master gain in dB")
	resoDelay := flag.Float64("resonator-delay", 44, "Resonator delay in samples")
	resoFeedback := flag.Float64("resonator-feedback", -0.7, "Resonator feedback in [-0.99, -0.3]")
	resoDamping := flag.Float64("resonator-damping", 0.5, "Resonator damping in [0.1, 0.9]")
	snareLevel := flag.Float64("snare-level", 0.3, "Snare layer level")
	flag.Parse()

	if *note < 0 || *note > 127 {
		die("note must be in [0,127]")
	}
	if *duration <= 0 {
		die("duration must be > 0")
	}
	if *sampleRate < 8000 {
		die("sample-rate must be >= 8000")
	}
	if *blockSize < 16 {
		*blockSize = 16
	}

	var noise drum.Noise
	if *seed != 0 {
		noise = drum.NewSeededNoise(*seed)
	}

	p, err := host.New(noise)
	if err != nil {
		die("create processor: %v", err)
	}

	controls := drum.DefaultControls()
	controls.MasterGainDB = *masterGain
	controls.ResonatorDelay = *resoDelay
	controls.ResonatorFeedback = *resoFeedback
	controls.ResonatorDamping = *resoDamping
	controls.SnareLevel = *snareLevel
	p.SetControls(controls)

	if err := p.Initialize(float64(*sampleRate)); err != nil {
		die("initialize: %v", err)
	}

	mono, err := renderHit(p, *note, *duration, *releaseAfter, *sampleRate, *blockSize)
	if err != nil {
		die("render: %v", err)
	}

	printStats(mono, *sampleRate)

	if *outPath != "" {
		if err := writeRawFloat32(*outPath, mono); err != nil {
			die("write %s: %v", *outPath, err)
		}
		fmt.Printf("Wrote %d samples to %s\n", len(mono), *outPath)
	}
}

// renderHit drives the processor block by block with a note-on at the
// start and a note-off at the release offset.
func renderHit(p *host.DrumProcessor, note int, duration, releaseAfter float64, sampleRate, blockSize int) ([]float64, error) {
	total := int(duration * float64(sampleRate))
	if total < 1 {
		return nil, fmt.Errorf("empty render: %v s at %d Hz", duration, sampleRate)
	}
	releaseAt := int(releaseAfter * float64(sampleRate))

	mono := make([]float64, 0, total)
	out := [][]float64{make([]float64, blockSize)}

	for rendered := 0; rendered < total; rendered += blockSize {
		block := blockSize
		if rendered+block > total {
			block = total - rendered
			out[0] = out[0][:block]
		}

		var events []drum.NoteEvent
		if rendered == 0 {
			events = append(events, drum.NoteOn(0, note))
		}
		if releaseAt >= rendered && releaseAt < rendered+block {
			events = append(events, drum.NoteOff(releaseAt-rendered, note))
		}

		p.ProcessBlock(out, events)
		mono = append(mono, out[0]...)
	}

	return mono, nil
}

func printStats(mono []float64, sampleRate int) {
	s := timestats.Calculate(mono)
	fmt.Printf("Samples:      %d (%.3f s at %d Hz)\n", s.Length, float64(s.Length)/float64(sampleRate), sampleRate)
	fmt.Printf("Peak:         %.2f dBFS (at sample %d)\n", s.Peak_dB, s.MaxPos)
	fmt.Printf("RMS:          %.2f dBFS\n", s.RMS_dB)
	fmt.Printf("Crest factor: %.2f dB\n", s.CrestFactor_dB)
	fmt.Printf("DC offset:    %.6f\n", s.DC)
	fmt.Printf("Zero crossings: %d\n", s.ZeroCrossings)
}

func writeRawFloat32(path string, mono []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 4*len(mono))
	for i, v := range mono {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
	}
	if _, err := f.Write(buf); err != nil {
		return err
	}

	return f.Close()
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
