package drum

// NoteEvent is a note on/off with a sample-offset timestamp relative to
// the start of the current block. Events handed to ProcessBlock must be
// ordered by non-decreasing offset; each takes effect exactly at the
// sample index matching its offset.
type NoteEvent struct {
	Offset int
	Note   int
	On     bool
}

// NoteOn builds a note-on event.
func NoteOn(offset, note int) NoteEvent {
	return NoteEvent{Offset: offset, Note: note, On: true}
}

// NoteOff builds a note-off event.
func NoteOff(offset, note int) NoteEvent {
	return NoteEvent{Offset: offset, Note: note}
}
