// Package audio plays sound files through the system's default output device.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// SampleRate is the rate the output device runs at. Files recorded at other
// rates are resampled.
const SampleRate = beep.SampleRate(44100)

const resampleQuality = 4

// ErrUnsupportedFormat is returned for files no decoder handles
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// EngineError reports a failure inside the audio engine itself: device
// initialisation or decoding. Failures to even reach the file are returned
// as plain errors.
type EngineError struct {
	Op   string
	Path string
	Err  error
}

func (e *EngineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("audio %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("audio %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// IsEngineError reports whether err came from the audio engine
func IsEngineError(err error) bool {
	var engineErr *EngineError
	return errors.As(err, &engineErr)
}

// stream is one decoded file on its way to the speaker
type stream struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	done     chan struct{}
	once     sync.Once
}

// close releases the decoder and the file and wakes Wait. It runs from the
// speaker's callback when the sound ends and from Stop, whichever comes first.
func (s *stream) close() {
	s.once.Do(func() {
		s.streamer.Close()
		s.file.Close()
		close(s.done)
	})
}

// Engine is a single-channel player: starting a sound replaces the one
// currently playing.
type Engine struct {
	mu      sync.Mutex // guards current
	current *stream
	logger  *zap.Logger
}

// NewEngine initialises the output device
func NewEngine(logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, &EngineError{Op: "init", Err: err}
	}
	return &Engine{logger: logger.Named("audio")}, nil
}

// Play loads path and starts playing it at volume (0.0 - 1.0)
func (e *Engine) Play(path string, volume float64) error {
	s, err := openStream(path)
	if err != nil {
		return err
	}

	var streamer beep.Streamer = s.streamer
	if s.format.SampleRate != SampleRate {
		streamer = beep.Resample(resampleQuality, s.format.SampleRate, SampleRate, streamer)
	}
	streamer = withVolume(streamer, volume)

	e.mu.Lock()
	e.stopLocked()
	e.current = s
	e.mu.Unlock()

	e.logger.Debug("Playing", zap.String("path", path), zap.Float64("volume", volume))
	speaker.Play(beep.Seq(streamer, beep.Callback(s.close)))
	return nil
}

// Wait blocks until the current sound has finished or been replaced
func (e *Engine) Wait() {
	e.mu.Lock()
	s := e.current
	e.mu.Unlock()
	if s != nil {
		<-s.done
	}
}

// Stop silences the current sound
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

// Close stops playback and releases the output device
func (e *Engine) Close() {
	e.Stop()
	speaker.Close()
}

func (e *Engine) stopLocked() {
	if e.current == nil {
		return
	}
	speaker.Clear()
	e.current.close()
	e.current = nil
}

// openStream opens path and picks a decoder from its extension
func openStream(path string) (*stream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	case ".wav":
		streamer, format, err = wav.Decode(file)
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	case ".flac":
		streamer, format, err = flac.Decode(file)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		file.Close()
		return nil, &EngineError{Op: "load", Path: path, Err: err}
	}

	return &stream{
		file:     file,
		streamer: streamer,
		format:   format,
		done:     make(chan struct{}),
	}, nil
}

// withVolume scales s linearly by volume, clamped to [0, 1]
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return s
	}
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}
