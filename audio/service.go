package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/scenery/parameter"
	"github.com/lixenwraith/scenery/service"
)

// Output receives synthesized cues; the speaker in production, a recorder in tests
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

// speakerOutput plays through the system audio device
type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Close()               { speaker.Close() }

// Service wraps cue playback as a service.Service
// Degrades to silent mode when no audio device is available
type Service struct {
	config   Config
	out      Output
	disabled atomic.Bool
	running  atomic.Bool
	muted    atomic.Bool

	mu       sync.Mutex
	lastPlay [cueCount]time.Time
}

// NewService creates an audio service bound to the system speaker
func NewService() *Service {
	return NewServiceWithOutput(speakerOutput{})
}

// NewServiceWithOutput creates an audio service bound to out
func NewServiceWithOutput(out Output) *Service {
	return &Service{config: DefaultConfig(), out: out}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// Accepts a Config argument; the first one found wins
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		if cfg, ok := arg.(Config); ok {
			s.config = cfg
			break
		}
	}
	if s.config.SampleRate <= 0 {
		return fmt.Errorf("audio: invalid sample rate %d", s.config.SampleRate)
	}
	s.muted.Store(!s.config.Enabled)
	return nil
}

// Start implements service.Service
// A missing device switches to silent mode instead of failing startup
func (s *Service) Start() error {
	if s.running.Load() {
		return fmt.Errorf("audio service already running")
	}
	if !s.config.Enabled {
		s.disabled.Store(true)
		return nil
	}

	rate := beep.SampleRate(s.config.SampleRate)
	if err := s.out.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		log.Printf("[audio] no output device, running silent: %v", err)
		s.disabled.Store(true)
		return nil
	}

	s.running.Store(true)
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.running.CompareAndSwap(true, false) {
		s.out.Close()
	}
	return nil
}

// Contribute implements service.ResourceContributor
// Publishes the Player only when output is live
func (s *Service) Contribute(publish service.ResourcePublisher) {
	if s.running.Load() && !s.disabled.Load() {
		publish(Player(s))
	}
}

// Play synthesizes and queues a cue
// Returns false when muted, silent, or the same cue played within MinCueGap
func (s *Service) Play(c Cue) bool {
	if !s.running.Load() || s.disabled.Load() || s.muted.Load() {
		return false
	}
	if c < 0 || c >= cueCount {
		return false
	}

	now := time.Now()
	s.mu.Lock()
	if now.Sub(s.lastPlay[c]) < parameter.MinCueGap {
		s.mu.Unlock()
		return false
	}
	s.lastPlay[c] = now
	s.mu.Unlock()

	s.out.Play(Synthesize(c, s.config))
	return true
}

// IsMuted reports whether playback is muted
func (s *Service) IsMuted() bool {
	return s.muted.Load()
}

// SetMuted toggles playback
func (s *Service) SetMuted(muted bool) {
	s.muted.Store(muted)
}

// IsDisabled reports whether the service runs without an output device
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}
