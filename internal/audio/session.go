// Package audio plays short procedural feedback tones.
//
// All scheduling is owned by a Session. Every pending tone is a timer the
// session holds and every sounding tone is a voice it tracks, so Stop can
// cancel the former and release the latter in one call. Nothing in this
// package keeps package-level state.
package audio

import (
	"errors"
	"sync"
	"time"

	"orbitfolio/internal/logging"

	"github.com/google/uuid"
)

// ErrStopped is returned by Start once the session has been stopped.
var ErrStopped = errors.New("audio session stopped")

// Tone is one scheduled note.
type Tone struct {
	Freq     float64       // Hz
	Gain     float64       // 0..1 before session volume
	Delay    time.Duration // from Play
	Duration time.Duration
}

// Session owns the lifecycle of every tone it schedules.
type Session struct {
	id     string
	sink   Sink
	volume float64

	mu      sync.Mutex
	running bool
	stopped bool
	next    int
	pending map[int]*time.Timer // start timers, keyed by voice id
	release map[int]*time.Timer // stop timers of sounding voices
	active  map[int]Voice
}

// NewSession creates an idle session. A nil sink is a NopSink.
func NewSession(sink Sink, volume float64) *Session {
	if sink == nil {
		sink = NopSink{}
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Session{
		id:      uuid.NewString(),
		sink:    sink,
		volume:  volume,
		pending: make(map[int]*time.Timer),
		release: make(map[int]*time.Timer),
		active:  make(map[int]Voice),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Start enables playback. Starting twice is a no-op; starting after Stop
// returns ErrStopped.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if !s.running {
		s.running = true
		logging.Audio("audio session %s started", s.id)
	}
	return nil
}

// Running reports whether the session accepts tones.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Play schedules tones relative to now and returns how many were scheduled.
// Tones played on an idle or stopped session are dropped.
func (s *Session) Play(tones ...Tone) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0
	}
	n := 0
	for _, t := range tones {
		if t.Duration <= 0 {
			continue
		}
		t.Gain *= s.volume
		s.next++
		v := Voice{ID: s.next, Tone: t}
		s.pending[v.ID] = time.AfterFunc(t.Delay, func() { s.noteOn(v) })
		n++
	}
	return n
}

// PlayPreset schedules a named preset.
func (s *Session) PlayPreset(p Preset) int {
	return s.Play(p.Tones()...)
}

func (s *Session) noteOn(v Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[v.ID]; !ok {
		return // cancelled by Stop
	}
	delete(s.pending, v.ID)

	if err := s.sink.NoteOn(v); err != nil {
		logging.AudioWarn("audio session %s: note on failed: %v", s.id, err)
		return
	}
	s.active[v.ID] = v
	s.release[v.ID] = time.AfterFunc(v.Tone.Duration, func() { s.noteOff(v.ID) })
}

func (s *Session) noteOff(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.active[id]
	if !ok {
		return
	}
	delete(s.active, id)
	delete(s.release, id)
	s.sink.NoteOff(v)
}

// Pending returns the number of scheduled tones not yet sounding.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Active returns the number of sounding voices.
func (s *Session) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Stop cancels every pending tone and releases every sounding voice. It is
// idempotent and safe to call on a session that never started.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.running = false

	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
	for id, t := range s.release {
		t.Stop()
		delete(s.release, id)
	}
	for id, v := range s.active {
		s.sink.NoteOff(v)
		delete(s.active, id)
	}
	logging.Audio("audio session %s stopped", s.id)
}
