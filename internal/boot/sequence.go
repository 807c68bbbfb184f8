// Package boot scripts the textual boot log that gates the orbital scene.
//
// The sequence is a pure timeline: given the time since mount it reports how
// many log lines are visible, whether a flash pulse is lit, and whether the
// scene may take over. It has no timers of its own and cannot be cancelled;
// the host frame clock drives it to completion.
package boot

import "time"

// DefaultLines is the stock boot log.
var DefaultLines = []string{
	"> ORBITFOLIO KERNEL v2.4.1",
	"> mounting project index ............ ok",
	"> resolving orbital lattice .......... ok",
	"> calibrating camera rig ............. ok",
	"> spinning up telemetry .............. ok",
	"> linking core uplinks ............... ok",
	"> audio subsystem .................... standby",
	"> all systems nominal",
}

// Defaults for the timeline.
const (
	DefaultInterval = 80 * time.Millisecond
	DefaultPulseGap = 40 * time.Millisecond
	DefaultSettle   = 150 * time.Millisecond
)

// DefaultPulses are the two closely spaced flashes fired on the final line.
var DefaultPulses = []time.Duration{50 * time.Millisecond, 30 * time.Millisecond}

// Sequence describes one boot animation.
type Sequence struct {
	Lines    []string
	Interval time.Duration   // delay before each line is revealed
	Pulses   []time.Duration // on-time of each flash pulse
	PulseGap time.Duration   // dark time between pulses
	Settle   time.Duration   // from the final line until the scene activates
}

// Default returns the stock sequence.
func Default() Sequence {
	return Sequence{
		Lines:    append([]string(nil), DefaultLines...),
		Interval: DefaultInterval,
		Pulses:   append([]time.Duration(nil), DefaultPulses...),
		PulseGap: DefaultPulseGap,
		Settle:   DefaultSettle,
	}
}

// Frame is the boot state at one instant.
type Frame struct {
	Visible  int     // number of lines revealed
	Flash    bool    // a flash pulse is lit
	Done     bool    // the scene may activate
	Progress float64 // 0..1 of the total duration
}

// Revealed is when the final line appears: line i shows at (i+1)·Interval.
func (s Sequence) Revealed() time.Duration {
	return time.Duration(len(s.Lines)) * s.Interval
}

// pulsesEnd is when the last flash pulse goes dark.
func (s Sequence) pulsesEnd() time.Duration {
	end := s.Revealed()
	for i, p := range s.Pulses {
		if i > 0 {
			end += s.PulseGap
		}
		end += p
	}
	return end
}

// Duration is the total time until Done.
func (s Sequence) Duration() time.Duration {
	settle := s.Revealed() + s.Settle
	if pe := s.pulsesEnd(); pe > settle {
		return pe
	}
	return settle
}

// At evaluates the timeline at elapsed time since mount.
func (s Sequence) At(elapsed time.Duration) Frame {
	if elapsed < 0 {
		elapsed = 0
	}
	total := s.Duration()

	f := Frame{Done: elapsed >= total}
	if total > 0 {
		f.Progress = float64(elapsed) / float64(total)
		if f.Progress > 1 {
			f.Progress = 1
		}
	} else {
		f.Progress = 1
	}

	if s.Interval > 0 {
		f.Visible = int(elapsed / s.Interval)
	} else {
		f.Visible = len(s.Lines)
	}
	if f.Visible > len(s.Lines) {
		f.Visible = len(s.Lines)
	}

	f.Flash = s.flashAt(elapsed)
	return f
}

func (s Sequence) flashAt(elapsed time.Duration) bool {
	start := s.Revealed()
	for i, p := range s.Pulses {
		if i > 0 {
			start += s.PulseGap
		}
		if elapsed >= start && elapsed < start+p {
			return true
		}
		start += p
	}
	return false
}
