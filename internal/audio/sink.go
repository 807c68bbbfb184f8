package audio

import (
	"io"
	"sync"
	"time"
)

// Voice is one sounding tone owned by a Session.
type Voice struct {
	ID   int
	Tone Tone
}

// Sink renders voices. NoteOn starts a voice and NoteOff releases it. A
// Session never calls NoteOff for a voice whose NoteOn failed.
type Sink interface {
	NoteOn(v Voice) error
	NoteOff(v Voice)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) NoteOn(Voice) error { return nil }
func (NopSink) NoteOff(Voice)      {}

// BellSink approximates tones with the terminal bell. Only audible voices
// ring, and bells closer together than MinGap are dropped so a burst of
// hover cues does not turn into a buzz.
type BellSink struct {
	W      io.Writer
	MinGap time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewBellSink returns a bell sink writing to w.
func NewBellSink(w io.Writer) *BellSink {
	return &BellSink{W: w, MinGap: 120 * time.Millisecond, now: time.Now}
}

func (b *BellSink) NoteOn(v Voice) error {
	if v.Tone.Gain <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if b.now != nil {
		now = b.now()
	}
	if !b.last.IsZero() && now.Sub(b.last) < b.MinGap {
		return nil
	}
	b.last = now
	_, err := io.WriteString(b.W, "\a")
	return err
}

func (b *BellSink) NoteOff(Voice) {}

// Event is one call recorded by RecorderSink.
type Event struct {
	On    bool
	Voice Voice
}

// RecorderSink records every call. Useful in tests.
type RecorderSink struct {
	mu     sync.Mutex
	events []Event
	Fail   error // returned from NoteOn when set
}

func (r *RecorderSink) NoteOn(v Voice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	r.events = append(r.events, Event{On: true, Voice: v})
	return nil
}

func (r *RecorderSink) NoteOff(v Voice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{On: false, Voice: v})
}

// Events returns a copy of the recorded calls.
func (r *RecorderSink) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Sounding returns the ids of voices turned on and not yet off.
func (r *RecorderSink) Sounding() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	on := map[int]bool{}
	var order []int
	for _, e := range r.events {
		if e.On {
			on[e.Voice.ID] = true
			order = append(order, e.Voice.ID)
		} else {
			delete(on, e.Voice.ID)
		}
	}
	out := []int{}
	for _, id := range order {
		if on[id] {
			out = append(out, id)
			delete(on, id)
		}
	}
	return out
}
