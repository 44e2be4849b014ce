package minegrid

import (
	"bytes"
	"io"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sirupsen/logrus"
)

// soundSampleRate is the audio context rate; sources are resampled to it
// at decode time.
const soundSampleRate = 44100

type soundKind uint8

const (
	soundFlip soundKind = iota
	soundExplosion
	soundWin
	soundKindCount
)

// soundBank holds decoded PCM for each effect. A nil bank, a nil context,
// or a missing clip all make play a no-op — sound is always optional.
type soundBank struct {
	ctx   *audio.Context
	clips [soundKindCount][]byte
}

// loadSounds decodes the configured WAV clips. Failures are logged and the
// clip skipped. Returns nil (no audio context is created) when no sound
// path is configured at all, so headless and silent hosts never touch the
// audio device.
func loadSounds(log *logrus.Logger, fsys fs.FS, o *Options) *soundBank {
	paths := [soundKindCount]struct {
		name, path string
	}{
		{"flip sound", o.Paths.FlipSound},
		{"explosion sound", o.Paths.ExplosionSound},
		{"win sound", o.Paths.WinSound},
	}

	any := false
	for _, p := range paths {
		if p.path != "" {
			any = true
		}
	}
	if fsys == nil || !any {
		return nil
	}

	bank := &soundBank{ctx: audio.CurrentContext()}
	if bank.ctx == nil {
		bank.ctx = audio.NewContext(soundSampleRate)
	}

	for kind, p := range paths {
		if p.path == "" {
			continue
		}
		pcm, err := decodeWAV(fsys, p.path)
		if err != nil {
			log.WithFields(logrus.Fields{"asset": p.name, "path": p.path, "error": err}).
				Warn("minegrid: sound load failed, clip disabled")
			continue
		}
		bank.clips[kind] = pcm
	}
	return bank
}

func decodeWAV(fsys fs.FS, path string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(soundSampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

// play starts the clip from the beginning. Overlapping plays mix; errors
// cannot occur (players over byte slices never fail to start).
func (s *soundBank) play(kind soundKind) {
	if s == nil || s.ctx == nil {
		return
	}
	clip := s.clips[kind]
	if clip == nil {
		return
	}
	p := s.ctx.NewPlayerFromBytes(clip)
	p.Play()
}
