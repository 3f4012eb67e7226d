package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

var audioContext = audio.NewContext(sampleRate)

// tone describes a short synthesized cue: a frequency sweep with a linear
// fade out, optionally mixed with noise.
type tone struct {
	from, to float64
	seconds  float64
	square   bool
	noise    float64
	volume   float64
}

var cues = map[string]tone{
	"jump":   {from: 320, to: 640, seconds: 0.12, square: true, volume: 0.25},
	"attack": {from: 180, to: 90, seconds: 0.09, noise: 0.7, volume: 0.3},
	"coin":   {from: 988, to: 1319, seconds: 0.14, square: true, volume: 0.2},
	"damage": {from: 440, to: 110, seconds: 0.25, square: true, noise: 0.2, volume: 0.3},
	"pearl":  {from: 760, to: 520, seconds: 0.07, volume: 0.25},
}

// Sounds plays named cues. Unknown names are reported, not fatal.
type Sounds struct {
	pcm   map[string][]byte
	muted bool
}

func NewSounds(muted bool) *Sounds {
	s := &Sounds{pcm: make(map[string][]byte, len(cues)), muted: muted}
	rng := rand.New(rand.NewPCG(1, 1))
	for name, t := range cues {
		s.pcm[name] = t.render(rng)
	}
	return s
}

func (s *Sounds) Play(name string) error {
	if s.muted {
		return nil
	}
	b, ok := s.pcm[name]
	if !ok {
		return fmt.Errorf("assets: unknown sound cue %q", name)
	}
	audioContext.NewPlayerFromBytes(b).Play()
	return nil
}

// render produces 16-bit little-endian stereo PCM.
func (t tone) render(rng *rand.Rand) []byte {
	n := int(t.seconds * sampleRate)
	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := t.from + (t.to-t.from)*p
		phase += 2 * math.Pi * freq / sampleRate

		v := math.Sin(phase)
		if t.square {
			v = math.Copysign(1, v)
		}
		if t.noise > 0 {
			v = v*(1-t.noise) + (rng.Float64()*2-1)*t.noise
		}
		v *= t.volume * (1 - p)

		sample := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sample))
	}
	return out
}
