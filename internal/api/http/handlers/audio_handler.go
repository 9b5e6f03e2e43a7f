package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-monitor/internal/audio"
)

// AudioHandler exposes the audio unlock gesture and a test-play endpoint.
type AudioHandler struct {
	subsystem  *audio.Subsystem
	dispatcher *audio.Dispatcher
}

// NewAudioHandler returns a new handler instance.
func NewAudioHandler(subsystem *audio.Subsystem, dispatcher *audio.Dispatcher) *AudioHandler {
	return &AudioHandler{subsystem: subsystem, dispatcher: dispatcher}
}

// Unlock records a forwarded user gesture, permitting automatic playback.
func (h *AudioHandler) Unlock(c *fiber.Ctx) error {
	h.subsystem.Unlock()
	return c.JSON(fiber.Map{"unlocked": true})
}

// Status reports the unlock state.
func (h *AudioHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"unlocked": h.subsystem.Unlocked()})
}

// Test plays the configured notification sound once through the normal
// dispatch chain.
func (h *AudioHandler) Test(c *fiber.Ctx) error {
	played := h.dispatcher.Play(c.UserContext())
	return c.JSON(fiber.Map{"played": played})
}

// Sounds lists the available sound names with display labels.
func (h *AudioHandler) Sounds(c *fiber.Ctx) error {
	sounds := make([]fiber.Map, 0, len(audio.KnownSounds)+1)
	for _, name := range audio.KnownSounds {
		sounds = append(sounds, fiber.Map{"name": name, "label": audio.DisplayName(name)})
	}
	sounds = append(sounds, fiber.Map{"name": audio.SoundNone, "label": audio.DisplayName(audio.SoundNone)})
	return c.JSON(fiber.Map{"sounds": sounds})
}
