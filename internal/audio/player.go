package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
)

// Output is where the player sends sound. The default is the system speaker.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerOutput) Close() { speaker.Close() }

// Option configures a Player.
type Option func(*Player)

// WithOutput replaces the system speaker.
func WithOutput(out Output) Option {
	return func(p *Player) {
		p.out = out
	}
}

// Player plays toast chimes.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger
	out    Output

	enabled bool

	// Volume control (0.0 to 1.0)
	volume float64

	// Whether the output has been initialized
	initialized bool
	// Set once initialization failed; sound stays off afterwards
	broken bool

	sampleRate beep.SampleRate

	// Per-type sound file overrides
	files map[model.Type]string
	cache map[model.Type]*beep.Buffer
}

// NewPlayer creates a player configured from cfg.
func NewPlayer(cfg config.SoundConfig, logger *slog.Logger, opts ...Option) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Player{
		logger:     logger,
		out:        speakerOutput{},
		sampleRate: DefaultSampleRate,
		cache:      make(map[model.Type]*beep.Buffer),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Apply(cfg)
	return p
}

// Apply updates the player from a (re)loaded config.
func (p *Player) Apply(cfg config.SoundConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.enabled = cfg.Enabled
	// Config uses 0-100, the player 0.0-1.0
	p.volume = clampVolume(float64(cfg.Volume) / 100.0)

	p.files = make(map[model.Type]string, len(cfg.Files))
	for name, path := range cfg.Files {
		t, err := model.ParseType(name)
		if err != nil {
			p.logger.Warn("ignoring sound for unknown type", "type", name)
			continue
		}
		p.files[t] = expandPath(path)
	}
	p.cache = make(map[model.Type]*beep.Buffer)
	p.logger.Debug("sound configured", "enabled", p.enabled, "volume", p.volume, "files", len(p.files))
}

// Enabled reports whether chimes will play.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && !p.broken
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play plays the chime for t. It is a no-op while sound is disabled.
func (p *Player) Play(t model.Type) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.broken {
		return nil
	}
	if err := p.ensureInitialized(); err != nil {
		p.broken = true
		p.logger.Warn("sound disabled", "error", err)
		return err
	}

	buffer, err := p.buffer(t)
	if err != nil {
		return err
	}

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != p.sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, p.sampleRate, streamer)
	}
	if p.volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToExponent(p.volume),
			Silent:   p.volume == 0,
		}
	}

	p.out.Play(streamer)
	return nil
}

// buffer returns the cached sound for t, loading it on first use. A file
// that fails to load falls back to the generated tone.
func (p *Player) buffer(t model.Type) (*beep.Buffer, error) {
	if b, ok := p.cache[t]; ok {
		return b, nil
	}

	var b *beep.Buffer
	if path, ok := p.files[t]; ok {
		loaded, err := loadSound(path)
		if err != nil {
			p.logger.Warn("failed to load sound, using tone", "type", t, "path", path, "error", err)
		} else {
			b = loaded
		}
	}
	if b == nil {
		tone, err := Chime(t, p.sampleRate)
		if err != nil {
			return nil, err
		}
		b = tone
	}

	p.cache[t] = b
	return b, nil
}

func (p *Player) ensureInitialized() error {
	if p.initialized {
		return nil
	}

	// Use a reasonable buffer size for low latency
	bufferSize := p.sampleRate.N(100 * time.Millisecond)
	if err := p.out.Init(p.sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", p.sampleRate)
	return nil
}

// Close stops all playback and releases resources.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		p.out.Close()
		p.initialized = false
	}
	p.cache = make(map[model.Type]*beep.Buffer)
}

// loadSound decodes a WAV, OGG or MP3 file into a buffer.
func loadSound(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// volumeToExponent converts a linear volume (0-1) to a base-2 gain exponent:
// 0.5 = -1, 0.25 = -2.
func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(volume)
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
