package boot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSequence_RevealsOneLinePerInterval(t *testing.T) {
	s := Default()

	assert.Equal(t, 0, s.At(0).Visible)
	assert.Equal(t, 0, s.At(79*time.Millisecond).Visible)
	assert.Equal(t, 1, s.At(80*time.Millisecond).Visible)
	assert.Equal(t, 3, s.At(250*time.Millisecond).Visible)
	assert.Equal(t, len(s.Lines), s.At(time.Hour).Visible)
}

func TestSequence_FlashPulses(t *testing.T) {
	s := Default()
	last := s.Revealed()

	assert.False(t, s.At(last-time.Millisecond).Flash)
	assert.True(t, s.At(last).Flash, "first pulse starts on the final line")
	assert.True(t, s.At(last+49*time.Millisecond).Flash)
	assert.False(t, s.At(last+50*time.Millisecond).Flash, "gap")
	assert.True(t, s.At(last+90*time.Millisecond).Flash, "second pulse")
	assert.False(t, s.At(last+120*time.Millisecond).Flash)
}

func TestSequence_CompletesAfterScript(t *testing.T) {
	s := Default()
	want := time.Duration(len(s.Lines))*s.Interval + s.Settle

	assert.Equal(t, want, s.Duration())
	assert.False(t, s.At(want-time.Millisecond).Done)
	assert.True(t, s.At(want).Done)
	assert.Equal(t, 1.0, s.At(want*3).Progress)
}

func TestSequence_SettleShorterThanPulses(t *testing.T) {
	s := Default()
	s.Settle = 10 * time.Millisecond
	assert.Equal(t, s.Revealed()+50*time.Millisecond+40*time.Millisecond+30*time.Millisecond, s.Duration())
}

func TestSequence_EmptyScript(t *testing.T) {
	s := Sequence{}
	f := s.At(0)
	assert.True(t, f.Done)
	assert.Equal(t, 0, f.Visible)
	assert.False(t, f.Flash)
}

func TestSequence_NegativeElapsed(t *testing.T) {
	f := Default().At(-time.Second)
	assert.Equal(t, 0, f.Visible)
	assert.False(t, f.Done)
}
