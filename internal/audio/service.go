package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/darkmatter/internal/config"
	"go.uber.org/zap"
)

// Service mixes sound effects to the speaker. Requests are collected during a frame and
// started by Flush, so a sound starts at most once per frame however often it was requested.
type Service struct {
	cfg     config.AudioConfig
	log     *zap.Logger
	rate    beep.SampleRate
	sounds  [assetCount]*beep.Buffer
	pending [assetCount]bool
	mixer   *beep.Mixer
	started bool
	played  uint64
}

func NewService(cfg config.AudioConfig, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		cfg:   cfg,
		log:   log,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
	for _, a := range Assets() {
		s.sounds[a] = synthesize(a, s.rate, cfg.Volume)
	}
	return s
}

// Start opens the speaker. A disabled service never opens it and Flush only drops requests.
func (s *Service) Start() error {
	if !s.cfg.Enabled || s.started {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.started = true
	s.log.Info("audio started", zap.Int("sample_rate", int(s.rate)), zap.Float64("volume", s.cfg.Volume))
	return nil
}

func (s *Service) Play(a Asset) {
	if a < assetCount {
		s.pending[a] = true
	}
}

// Pending returns the sounds requested since the last Flush.
func (s *Service) Pending() []Asset {
	var out []Asset
	for a, ok := range s.pending {
		if ok {
			out = append(out, Asset(a))
		}
	}
	return out
}

// Flush starts the requested sounds and returns how many were requested.
func (s *Service) Flush() int {
	pending := s.Pending()
	clear(s.pending[:])
	if len(pending) == 0 {
		return 0
	}

	if s.started {
		speaker.Lock()
		for _, a := range pending {
			buf := s.sounds[a]
			s.mixer.Add(buf.Streamer(0, buf.Len()))
		}
		speaker.Unlock()
	}
	s.played += uint64(len(pending))
	return len(pending)
}

// Played returns the number of sounds flushed so far.
func (s *Service) Played() uint64 {
	return s.played
}

// Length returns the duration of a.
func (s *Service) Length(a Asset) time.Duration {
	return s.rate.D(s.sounds[a].Len())
}

func (s *Service) Close() {
	if !s.started {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.started = false
}
