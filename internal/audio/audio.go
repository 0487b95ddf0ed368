// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"roomcrawl/internal/system"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one tone.
type Cue struct {
	Freq   float64 // Hz
	Length time.Duration
	Volume float64 // exponent on base 2; 0 is unchanged, -1 is half
}

var cues = map[system.EventKind]Cue{
	system.EventEnemyHit:     {Freq: 440, Length: 40 * time.Millisecond, Volume: -2},
	system.EventEnemyKilled:  {Freq: 220, Length: 120 * time.Millisecond, Volume: -1},
	system.EventPlayerHit:    {Freq: 110, Length: 180 * time.Millisecond, Volume: -0.5},
	system.EventShieldBlock:  {Freq: 660, Length: 90 * time.Millisecond, Volume: -1},
	system.EventPickup:       {Freq: 880, Length: 80 * time.Millisecond, Volume: -1},
	system.EventDoorUnlocked: {Freq: 523, Length: 150 * time.Millisecond, Volume: -1},
	system.EventDoorLocked:   {Freq: 98, Length: 60 * time.Millisecond, Volume: -2},
	system.EventDash:         {Freq: 330, Length: 50 * time.Millisecond, Volume: -2.5},
	system.EventDashHit:      {Freq: 392, Length: 60 * time.Millisecond, Volume: -1.5},
	system.EventRoomCleared:  {Freq: 784, Length: 250 * time.Millisecond, Volume: -1},
	system.EventPlayerShot:   {Freq: 1200, Length: 20 * time.Millisecond, Volume: -3},
	system.EventEnemyShot:    {Freq: 600, Length: 20 * time.Millisecond, Volume: -3.5},
	system.EventPlayerDied:   {Freq: 82, Length: 600 * time.Millisecond},
	system.EventFloorCleared: {Freq: 1046, Length: 400 * time.Millisecond, Volume: -1},
}

// CueFor returns the cue played for kind.
func CueFor(kind system.EventKind) (Cue, bool) {
	c, ok := cues[kind]
	return c, ok
}

// Player is a system.Sink that mixes a cue per event into the speaker.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	log    *slog.Logger
	closed bool
}

// New opens the speaker. Callers fall back to system.NopSink when it fails,
// e.g. on a machine without an audio device.
func New(logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := &Player{mixer: &beep.Mixer{}, log: logger}
	speaker.Play(p.mixer)
	return p, nil
}

// Emit queues the cue for e, if it has one.
func (p *Player) Emit(e system.Event) {
	cue, ok := CueFor(e.Kind)
	if !ok {
		return
	}
	s, err := Streamer(sampleRate, cue)
	if err != nil {
		p.log.Debug("audio cue skipped", "event", e.Kind.String(), "err", err)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Streamer renders a cue as a finite streamer at rate sr.
func Streamer(sr beep.SampleRate, c Cue) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, c.Freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.0f Hz: %w", c.Freq, err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(c.Length), tone),
		Base:     2,
		Volume:   c.Volume,
	}, nil
}
