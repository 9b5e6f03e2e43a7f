package audio

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Playback describes one playback request handed to a sink.
type Playback struct {
	Name   string
	Volume float64
	Audio  io.Reader
}

// Sink renders a loaded sound resource. Implementations must treat every
// call as fire-and-forget: returning nil means playback was started, not
// that it completed.
type Sink interface {
	Play(ctx context.Context, p Playback) error
}

// ExecSink plays sounds by piping the resource into an external player
// process (mpg123 by default). Player exit status is logged, never surfaced;
// a notification that fails mid-playback is simply lost.
type ExecSink struct {
	command string
	logger  *zap.Logger
}

// NewExecSink builds a sink around the given player command line.
func NewExecSink(command string, logger *zap.Logger) *ExecSink {
	return &ExecSink{command: command, logger: logger}
}

// Play starts the player process reading the resource from stdin.
func (s *ExecSink) Play(ctx context.Context, p Playback) error {
	if p.Volume <= 0 {
		// Zero volume still counts as a successful playback of the silent
		// resource; spawning a player for it would be pointless.
		return nil
	}

	parts := strings.Fields(s.command)
	if len(parts) == 0 {
		return errors.New("no player command configured")
	}
	args := append(parts[1:], "-")

	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdin = p.Audio
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Warn("sound player exited with error",
				zap.String("sound", p.Name),
				zap.Error(err))
		}
	}()
	return nil
}
