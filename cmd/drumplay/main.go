// Command drumplay renders a drum hit in real time and plays it through
// the default audio device.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-drums/drum"
	"github.com/cwbudde/algo-drums/host"
)

func main() {
	note := flag.Int("note", 60, "MIDI note to trigger")
	duration := flag.Float64("duration", 2.0, "Playback duration in seconds")
	releaseAfter := flag.Float64("release-after", 0.5, "Seconds before note-off")
	sampleRate := flag.Int("sample-rate", 44100, "Playback sample rate")
	blockSize := flag.Int("block-size", 512, "Render block size")
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

	p, err := host.New(nil)
	if err != nil {
		die("create processor: %v", err)
	}
	if err := p.Initialize(float64(*sampleRate)); err != nil {
		die("initialize: %v", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		die("audio context: %v", err)
	}
	<-ready

	src := &hitReader{
		proc:      p,
		note:      *note,
		total:     int(*duration * float64(*sampleRate)),
		releaseAt: int(*releaseAfter * float64(*sampleRate)),
		block:     [][]float64{make([]float64, *blockSize)},
	}

	player := ctx.NewPlayer(src)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		die("close player: %v", err)
	}
}

// hitReader streams one rendered drum hit as float32 LE mono PCM. The
// note-on fires at sample zero and the note-off at releaseAt; after
// total samples the reader returns io.EOF.
type hitReader struct {
	proc      *host.DrumProcessor
	note      int
	total     int
	releaseAt int
	rendered  int
	block     [][]float64
	pending   []byte
}

func (r *hitReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		if r.rendered >= r.total {
			return 0, io.EOF
		}
		r.renderBlock()
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]

	return n, nil
}

func (r *hitReader) renderBlock() {
	out := r.block[0]
	if r.rendered+len(out) > r.total {
		out = out[:r.total-r.rendered]
	}

	var events []drum.NoteEvent
	if r.rendered == 0 {
		events = append(events, drum.NoteOn(0, r.note))
	}
	if r.releaseAt >= r.rendered && r.releaseAt < r.rendered+len(out) {
		events = append(events, drum.NoteOff(r.releaseAt-r.rendered, r.note))
	}

	r.proc.ProcessBlock([][]float64{out}, events)
	r.rendered += len(out)

	buf := make([]byte, 4*len(out))
	for i, v := range out {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
	}
	r.pending = buf
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
