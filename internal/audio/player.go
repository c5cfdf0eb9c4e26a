package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/snekecs/snek/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Player plays short tones. A disabled player is a no-op so callers never
// need to check whether audio is available.
type Player struct {
	enabled   bool
	frequency float64
	duration  time.Duration
	played    int
}

// NewPlayer opens the speaker when audio is enabled.
func NewPlayer(cfg config.AudioConfig) (*Player, error) {
	p := &Player{frequency: cfg.Frequency, duration: cfg.Duration}
	if !cfg.Enabled {
		return p, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return p, fmt.Errorf("init speaker: %w", err)
	}
	p.enabled = true
	return p, nil
}

// Disabled returns a player that never touches the speaker.
func Disabled() *Player {
	return &Player{}
}

func (p *Player) Enabled() bool { return p.enabled }

// Played counts Blip calls that reached the speaker.
func (p *Player) Played() int { return p.played }

// Blip plays the configured tone without blocking.
func (p *Player) Blip() {
	if !p.enabled {
		return
	}
	tone, err := generators.SineTone(sampleRate, p.frequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(p.duration), tone))
	p.played++
}

func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}
