package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave uint8

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

// oscillator sweeps linearly from one frequency to another over its duration.
type oscillator struct {
	wave     wave
	from, to float64
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
	noise    *rand.Rand
}

func newOscillator(w wave, from, to float64, d time.Duration, rate beep.SampleRate) *oscillator {
	return &oscillator{
		wave:  w,
		from:  from,
		to:    to,
		rate:  rate,
		total: rate.N(d),
		noise: rand.New(rand.NewPCG(uint64(from), uint64(to))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (o.phase - 0.5)
		case waveNoise:
			v = o.noise.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := o.from + (o.to-o.from)*float64(o.pos)/float64(o.total)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades the wrapped streamer in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	attack   int
	release  int
	total    int
	pos      int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{streamer: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		} else if left := e.total - e.pos; left < e.release {
			vol = max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain scales s linearly. Zero or less is silence.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type note struct {
	wave     wave
	from, to float64
	length   time.Duration
	attack   time.Duration
	release  time.Duration
}

func (n note) streamer(rate beep.SampleRate) beep.Streamer {
	osc := newOscillator(n.wave, n.from, n.to, n.length, rate)
	return newEnvelope(osc, n.length, n.attack, n.release, rate)
}

var recipes = [assetCount][]note{
	Explosion: {{waveNoise, 60, 30, 900 * time.Millisecond, 5 * time.Millisecond, 700 * time.Millisecond}},
	Boost1:    {{waveSine, 330, 660, 180 * time.Millisecond, 5 * time.Millisecond, 60 * time.Millisecond}},
	Boost2: {
		{waveSine, 330, 660, 120 * time.Millisecond, 5 * time.Millisecond, 20 * time.Millisecond},
		{waveSine, 660, 1320, 160 * time.Millisecond, 5 * time.Millisecond, 80 * time.Millisecond},
	},
	Life: {
		{waveSquare, 523.25, 523.25, 90 * time.Millisecond, 2 * time.Millisecond, 20 * time.Millisecond},
		{waveSquare, 783.99, 783.99, 140 * time.Millisecond, 2 * time.Millisecond, 80 * time.Millisecond},
	},
	Shield: {{waveSine, 880, 880, 250 * time.Millisecond, 10 * time.Millisecond, 200 * time.Millisecond}},
	Block:  {{waveSaw, 110, 110, 100 * time.Millisecond, 2 * time.Millisecond, 40 * time.Millisecond}},
	Damage: {{waveSaw, 180, 90, 150 * time.Millisecond, 2 * time.Millisecond, 80 * time.Millisecond}},
	Spawn:  {{waveSine, 220, 880, 400 * time.Millisecond, 20 * time.Millisecond, 150 * time.Millisecond}},
}

// synthesize renders the sound of a into a buffer at rate and volume.
func synthesize(a Asset, rate beep.SampleRate, volume float64) *beep.Buffer {
	parts := make([]beep.Streamer, 0, len(recipes[a]))
	for _, n := range recipes[a] {
		parts = append(parts, n.streamer(rate))
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(gain(beep.Seq(parts...), volume))
	return buf
}
