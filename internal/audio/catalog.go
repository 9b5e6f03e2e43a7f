package audio

import "strings"

// SoundNone is the reserved name for a silent, zero-volume resource. It is a
// real channel rather than a no-op so the dispatch path stays uniform.
const SoundNone = "none"

// DefaultSound is used when no notification sound is configured.
const DefaultSound = "notificacao"

// KnownSounds lists the shipped sound resources, addressable as
// /<dir>/<name>.mp3.
var KnownSounds = []string{
	"alertabeebeep",
	"cashregister",
	"notificacao",
	"senna",
	"sireneindustrial",
	"ultrapassagem",
}

var displayNames = map[string]string{
	"alertabeebeep":    "Alerta Beep",
	"cashregister":     "Caixa Registradora",
	"notificacao":      "Notificação",
	"senna":            "Senna",
	"sireneindustrial": "Sirene Industrial",
	"ultrapassagem":    "Ultrapassagem",
	SoundNone:          "Sem Som",
}

// DisplayName returns a human-readable label for a sound name or file name.
func DisplayName(name string) string {
	base := strings.TrimSuffix(name, ".mp3")
	if base == "" {
		return "Som Desconhecido"
	}
	if label, ok := displayNames[base]; ok {
		return label
	}
	return strings.ToUpper(base[:1]) + base[1:]
}
