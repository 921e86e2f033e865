package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/scenery/service"
)

type recorder struct {
	initErr error
	rate    beep.SampleRate
	played  int
	closed  int
}

func (r *recorder) Init(rate beep.SampleRate, bufferSize int) error {
	r.rate = rate
	return r.initErr
}
func (r *recorder) Play(s beep.Streamer) { r.played++ }
func (r *recorder) Close()               { r.closed++ }

var _ service.Service = (*Service)(nil)
var _ service.ResourceContributor = (*Service)(nil)
var _ Player = (*Service)(nil)

func enabledConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	return cfg
}

// TestService_PlayAndGap verifies playback reaches the output and repeats are rate limited
func TestService_PlayAndGap(t *testing.T) {
	out := &recorder{}
	s := NewServiceWithOutput(out)
	if err := s.Init(enabledConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !s.Play(CueEnter) {
		t.Error("Expected first cue to play")
	}
	if s.Play(CueEnter) {
		t.Error("Expected immediate repeat to be suppressed")
	}
	if !s.Play(CueOpen) {
		t.Error("Expected a different cue to play")
	}
	if out.played != 2 {
		t.Errorf("Expected 2 plays, got %d", out.played)
	}

	s.SetMuted(true)
	if s.Play(CueClose) {
		t.Error("Expected muted service not to play")
	}

	s.Stop()
	s.Stop()
	if out.closed != 1 {
		t.Errorf("Expected 1 close, got %d", out.closed)
	}
}

// TestService_SilentModes verifies disabled config and device failure degrade without error
func TestService_SilentModes(t *testing.T) {
	out := &recorder{}
	s := NewServiceWithOutput(out)
	if err := s.Init(DefaultConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.IsDisabled() || s.Play(CueEnter) {
		t.Error("Expected disabled config to run silent")
	}

	out = &recorder{initErr: errors.New("no device")}
	s = NewServiceWithOutput(out)
	s.Init(enabledConfig())
	if err := s.Start(); err != nil {
		t.Errorf("Expected device failure to be absorbed, got %v", err)
	}
	if !s.IsDisabled() {
		t.Error("Expected silent mode after device failure")
	}

	var published []any
	s.Contribute(func(r any) { published = append(published, r) })
	if len(published) != 0 {
		t.Errorf("Expected no resource from silent service, got %d", len(published))
	}
}

// TestService_Contribute verifies a live service publishes itself as a Player
func TestService_Contribute(t *testing.T) {
	s := NewServiceWithOutput(&recorder{})
	s.Init(enabledConfig())
	s.Start()

	var published []any
	s.Contribute(func(r any) { published = append(published, r) })
	if len(published) != 1 {
		t.Fatalf("Expected 1 resource, got %d", len(published))
	}
	if _, ok := published[0].(Player); !ok {
		t.Errorf("Expected Player, got %T", published[0])
	}
}

// TestService_InvalidRate verifies Init rejects a non-positive sample rate
func TestService_InvalidRate(t *testing.T) {
	s := NewServiceWithOutput(&recorder{})
	if err := s.Init(Config{Enabled: true}); err == nil {
		t.Error("Expected error for zero sample rate")
	}
}
