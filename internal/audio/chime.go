package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"

	"github.com/jmylchreest/toasty/internal/model"
)

// ChimeLength is the duration of a generated chime.
const ChimeLength = 150 * time.Millisecond

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

var chimeFrequencies = map[model.Type]float64{
	model.TypeSuccess: 880,
	model.TypeInfo:    660,
	model.TypeWarning: 520,
	model.TypeError:   330,
}

// Frequency returns the chime pitch for t in Hz.
func Frequency(t model.Type) (float64, error) {
	f, ok := chimeFrequencies[t]
	if !ok {
		return 0, fmt.Errorf("chime for %d: %w", t, model.ErrUnknownType)
	}
	return f, nil
}

// Chime renders the tone for t into a buffer at the given sample rate.
func Chime(t model.Type, sr beep.SampleRate) (*beep.Buffer, error) {
	freq, err := Frequency(t)
	if err != nil {
		return nil, err
	}
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tone: %w", err)
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buffer.Append(beep.Take(sr.N(ChimeLength), tone))
	return buffer, nil
}
