package audio

import "time"

// Preset names a stock feedback sound.
type Preset int

const (
	PresetNone Preset = iota
	PresetHover
	PresetSelect
	PresetDeselect
	PresetCore
	PresetBootLine
	PresetBootFlash
	PresetClose
)

var presetNames = map[Preset]string{
	PresetNone:      "none",
	PresetHover:     "hover",
	PresetSelect:    "select",
	PresetDeselect:  "deselect",
	PresetCore:      "core",
	PresetBootLine:  "boot_line",
	PresetBootFlash: "boot_flash",
	PresetClose:     "close",
}

func (p Preset) String() string {
	if n, ok := presetNames[p]; ok {
		return n
	}
	return "unknown"
}

// Tones returns the notes of the preset.
func (p Preset) Tones() []Tone {
	ms := time.Millisecond
	switch p {
	case PresetHover:
		return []Tone{{Freq: 880, Gain: 0.15, Duration: 40 * ms}}
	case PresetSelect:
		return []Tone{
			{Freq: 523.25, Gain: 0.4, Duration: 60 * ms},
			{Freq: 783.99, Gain: 0.4, Delay: 60 * ms, Duration: 90 * ms},
		}
	case PresetDeselect:
		return []Tone{
			{Freq: 783.99, Gain: 0.3, Duration: 50 * ms},
			{Freq: 523.25, Gain: 0.3, Delay: 50 * ms, Duration: 70 * ms},
		}
	case PresetCore:
		return []Tone{
			{Freq: 220, Gain: 0.5, Duration: 120 * ms},
			{Freq: 330, Gain: 0.35, Delay: 40 * ms, Duration: 120 * ms},
			{Freq: 440, Gain: 0.25, Delay: 80 * ms, Duration: 160 * ms},
		}
	case PresetBootLine:
		return []Tone{{Freq: 1200, Gain: 0.08, Duration: 15 * ms}}
	case PresetBootFlash:
		return []Tone{
			{Freq: 110, Gain: 0.6, Duration: 50 * ms},
			{Freq: 110, Gain: 0.6, Delay: 90 * ms, Duration: 30 * ms},
		}
	case PresetClose:
		return []Tone{{Freq: 196, Gain: 0.4, Duration: 140 * ms}}
	}
	return nil
}
