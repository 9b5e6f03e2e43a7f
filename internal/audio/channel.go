package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
)

// ErrNotLoaded is returned when a channel is played before its resource has
// been loaded.
var ErrNotLoaded = errors.New("audio: channel resource not loaded")

// Channel is a named playable sound bound to one resolved resource file.
// Every playback reads the resource from the start through its own reader;
// the sink may still be consuming a previous playback when the next one
// begins.
type Channel struct {
	name   string
	path   string
	silent bool
	sink   Sink

	mu     sync.Mutex
	volume float64
	data   []byte
	loaded bool
}

func newChannel(name, path string, silent bool, sink Sink) *Channel {
	return &Channel{name: name, path: path, silent: silent, sink: sink, volume: 0.5}
}

// Name returns the logical sound name the channel is bound to.
func (c *Channel) Name() string {
	return c.name
}

// Load reads the resource into memory. The silent channel loads trivially.
func (c *Channel) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.silent {
		c.data = nil
		c.volume = 0
		c.loaded = true
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	c.data = data
	c.loaded = true
	return nil
}

// Loaded reports whether the resource is ready to play.
func (c *Channel) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// SetVolume clamps and stores the playback volume. The silent channel pins
// volume to zero.
func (c *Channel) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.silent {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.volume = v
}

// Play submits the resource to the sink. Each playback gets its own reader
// over the loaded bytes, so an in-flight playback never contends with the
// next one for a shared cursor.
func (c *Channel) Play(ctx context.Context) error {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	p := Playback{Name: c.name, Volume: c.volume, Audio: bytes.NewReader(c.data)}
	c.mu.Unlock()

	return c.sink.Play(ctx, p)
}
