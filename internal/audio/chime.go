package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone of the expiry melody; zero frequency is a rest.
type note struct {
	frequency float64
	duration  time.Duration
}

var expiryMelody = []note{
	{frequency: 880, duration: 120 * time.Millisecond},
	{duration: 60 * time.Millisecond},
	{frequency: 1175, duration: 120 * time.Millisecond},
	{duration: 60 * time.Millisecond},
	{frequency: 1568, duration: 260 * time.Millisecond},
}

// Chime plays a short melody when a countdown expires. Playback failures
// are logged and otherwise ignored; the widget works without sound.
type Chime struct {
	mu          sync.Mutex
	initialized bool
	log         *logrus.Entry
}

// NewChime creates an uninitialised chime.
func NewChime(logger *logrus.Entry) *Chime {
	return &Chime{log: logger.WithField("component", "audio")}
}

// Initialize opens the speaker.
func (chime *Chime) Initialize() error {
	chime.mu.Lock()
	defer chime.mu.Unlock()

	if chime.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	chime.initialized = true
	return nil
}

// Play queues the expiry melody.
func (chime *Chime) Play() {
	chime.mu.Lock()
	defer chime.mu.Unlock()

	if !chime.initialized {
		return
	}
	melody, err := Melody(sampleRate)
	if err != nil {
		chime.log.Warnf("build chime: %v", err)
		return
	}
	speaker.Play(melody)
}

// Close releases the speaker.
func (chime *Chime) Close() {
	chime.mu.Lock()
	defer chime.mu.Unlock()

	if !chime.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	chime.initialized = false
}

// Melody returns the expiry melody as a finite streamer.
func Melody(rate beep.SampleRate) (beep.Streamer, error) {
	streamers := make([]beep.Streamer, 0, len(expiryMelody))
	for _, n := range expiryMelody {
		samples := rate.N(n.duration)
		if n.frequency == 0 {
			streamers = append(streamers, beep.Silence(samples))
			continue
		}
		sine, err := generators.SineTone(rate, n.frequency)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", n.frequency, err)
		}
		streamers = append(streamers, beep.Take(samples, attenuate(sine, 0.3)))
	}
	return beep.Seq(streamers...), nil
}

// MelodyLength reports the melody duration.
func MelodyLength() time.Duration {
	var total time.Duration
	for _, n := range expiryMelody {
		total += n.duration
	}
	return total
}

func attenuate(streamer beep.Streamer, gain float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := streamer.Stream(samples)
		for i := range samples[:n] {
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		return n, ok
	})
}
