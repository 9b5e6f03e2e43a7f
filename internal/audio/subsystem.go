package audio

import (
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var audioExtensions = []string{".mp3", ".wav", ".ogg"}

// Subsystem owns the audio unlock state and the channel cache. It replaces
// what was ambient process-wide state in the system this service descends
// from: callers hold a reference and never touch channel state directly.
type Subsystem struct {
	dir    string
	sink   Sink
	logger *zap.Logger

	mu       sync.Mutex
	unlocked bool
	channels map[string]*Channel
}

// NewSubsystem builds a locked subsystem reading resources from dir.
func NewSubsystem(dir string, sink Sink, logger *zap.Logger) *Subsystem {
	return &Subsystem{
		dir:      dir,
		sink:     sink,
		logger:   logger,
		channels: make(map[string]*Channel),
	}
}

// Unlock permits automatic playback. The transition is one-way and
// idempotent; the host UI forwards any user interaction here.
func (s *Subsystem) Unlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		s.unlocked = true
		s.logger.Info("audio unlocked")
	}
}

// Unlocked reports whether automatic playback is permitted.
func (s *Subsystem) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked
}

// ResolvePath maps a logical sound name to its resource path. Names already
// carrying a recognized audio extension are used verbatim; anything else
// gets ".mp3" appended. SoundNone resolves to no path at all.
func (s *Subsystem) ResolvePath(name string) (path string, silent bool) {
	if name == SoundNone {
		return "", true
	}
	for _, ext := range audioExtensions {
		if strings.HasSuffix(name, ext) {
			return filepath.Join(s.dir, name), false
		}
	}
	return filepath.Join(s.dir, name+".mp3"), false
}

// Channel returns the cached channel for the sound name, creating and
// loading it on first use.
func (s *Subsystem) Channel(name string) (*Channel, error) {
	s.mu.Lock()
	if ch, ok := s.channels[name]; ok {
		s.mu.Unlock()
		return ch, nil
	}
	s.mu.Unlock()

	ch := s.NewChannel(name)
	if err := ch.Load(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.channels[name]; ok {
		return existing, nil
	}
	s.channels[name] = ch
	return ch, nil
}

// NewChannel constructs a fresh, uncached channel bound to the sound. The
// caller is responsible for loading it.
func (s *Subsystem) NewChannel(name string) *Channel {
	path, silent := s.ResolvePath(name)
	return newChannel(name, path, silent, s.sink)
}

// PreloadAll warms the channel cache for the given sound names. Preloading
// is an optimization only; every dispatch path also works against a cold
// cache.
func (s *Subsystem) PreloadAll(names []string) {
	for _, name := range names {
		if _, err := s.Channel(name); err != nil {
			s.logger.Warn("failed to preload sound", zap.String("sound", name), zap.Error(err))
			continue
		}
		s.logger.Debug("preloaded sound", zap.String("sound", name))
	}
}
