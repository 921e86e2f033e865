package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/scenery/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping and cuts the stream at its duration
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if remaining := e.totalSamples - e.position; remaining < len(samples) {
		if remaining <= 0 {
			return 0, false
		}
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly
// math.Log2(0) is -Inf, so zero volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a shaped oscillator
func note(freq float64, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, WaveSine, rate), d, attack, release, rate)
}

// tone is a shaped generator tone, falling back to the oscillator if the generator rejects freq
func tone(freq float64, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	src, err := generators.SineTone(rate, freq)
	if err != nil {
		return note(freq, d, attack, release, rate)
	}
	return NewEnvelope(beep.Take(rate.N(d), src), d, attack, release, rate)
}

// Synthesize builds the streamer for a cue at the configured rate and volume
// The stream ends after exactly CueLength samples
func Synthesize(c Cue, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch c {
	case CueEnter:
		s = beep.Seq(
			note(659.25, parameter.EnterCueNote1Duration, parameter.EnterCueAttack, parameter.EnterCueRelease, rate),
			note(987.77, parameter.EnterCueNote2Duration, parameter.EnterCueAttack, parameter.EnterCueRelease, rate),
		)
	case CueExit:
		s = beep.Seq(
			note(987.77, parameter.ExitCueNote1Duration, parameter.ExitCueAttack, parameter.ExitCueRelease, rate),
			note(659.25, parameter.ExitCueNote2Duration, parameter.ExitCueAttack, parameter.ExitCueRelease, rate),
		)
	case CueOpen:
		s = beep.Mix(
			newVolume(tone(523.25, parameter.OpenCueDuration, parameter.ModalCueAttack, parameter.ModalCueRelease, rate), 0.7),
			newVolume(tone(1046.5, parameter.OpenCueDuration, parameter.ModalCueAttack, parameter.ModalCueRelease, rate), 0.3),
		)
	case CueClose:
		s = tone(392.0, parameter.CloseCueDuration, parameter.ModalCueAttack, parameter.ModalCueRelease, rate)
	default:
		return beep.Silence(0)
	}

	return beep.Take(CueLength(c, rate), newVolume(s, cfg.Volume))
}

// CueLength returns the number of samples a cue produces at rate
func CueLength(c Cue, rate beep.SampleRate) int {
	switch c {
	case CueEnter:
		return rate.N(parameter.EnterCueNote1Duration) + rate.N(parameter.EnterCueNote2Duration)
	case CueExit:
		return rate.N(parameter.ExitCueNote1Duration) + rate.N(parameter.ExitCueNote2Duration)
	case CueOpen:
		return rate.N(parameter.OpenCueDuration)
	case CueClose:
		return rate.N(parameter.CloseCueDuration)
	}
	return 0
}
