package watermark

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ausocean/watermark/internal/shape"
)

func smallConfig() Config {
	return Config{ChipRate: 64, SampleRate: 8000}
}

// sineHost returns n samples of a sine wave at freqHz, sampled at
// sampleRate, as a synthetic host signal.
func sineHost(n int, freqHz, sampleRate, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/sampleRate)
	}
	return out
}

// gaussianNoise returns n deterministic pseudo-Gaussian samples with
// standard deviation sigma, via a Box-Muller transform over a seeded
// generator local to the call.
func gaussianNoise(n int, sigma float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x2545f4914f6cdd1d))
	out := make([]float64, n)
	for i := 0; i < n; i += 2 {
		u1 := rng.Float64()
		if u1 < 1e-12 {
			u1 = 1e-12
		}
		u2 := rng.Float64()
		r := math.Sqrt(-2 * math.Log(u1))
		out[i] = r * math.Cos(2*math.Pi*u2) * sigma
		if i+1 < n {
			out[i+1] = r * math.Sin(2*math.Pi*u2) * sigma
		}
	}
	return out
}

func TestEmbedLengthPreserved(t *testing.T) {
	w, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	host := make([]float64, w.frameLen()+5000)
	out, err := w.Embed(host, 42)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(out) != len(host) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(host))
	}
}

func TestEmbedInvalidID(t *testing.T) {
	w, _ := New(smallConfig())
	host := make([]float64, w.frameLen())
	_, err := w.Embed(host, MaxID)
	if err != ErrInvalidID {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
}

func TestEmbedHostTooShort(t *testing.T) {
	w, _ := New(smallConfig())
	_, err := w.Embed(make([]float64, 10), 1)
	if err != ErrHostTooShort {
		t.Fatalf("err = %v, want ErrHostTooShort", err)
	}
}

func TestEmbedTouchesOnlyFramePrefix(t *testing.T) {
	w, _ := New(smallConfig())
	n := w.frameLen()
	host := make([]float64, n+2000)
	for i := range host {
		host[i] = 0.25
	}
	out, err := w.Embed(host, 7)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for i := n; i < len(host); i++ {
		if out[i] != host[i] {
			t.Fatalf("out[%d] = %v, want unchanged %v", i, out[i], host[i])
		}
	}
}

func TestGeneratePNDeterministic(t *testing.T) {
	w, _ := New(smallConfig())
	a := w.GeneratePN(500)
	b := w.GeneratePN(500)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("GeneratePN not deterministic at %d: %v != %v", i, a[i], b[i])
		}
		if a[i] != 1 && a[i] != -1 {
			t.Fatalf("GeneratePN[%d] = %v, want +-1", i, a[i])
		}
	}
}

func TestExtractRoundTripOnSilence(t *testing.T) {
	w, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	host := make([]float64, w.frameLen()+5000)

	const id = 123456
	embedded, err := w.Embed(host, id)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	got, found := w.Extract(embedded)
	if !found {
		t.Fatal("Extract did not find the embedded watermark")
	}
	if got != id {
		t.Fatalf("Extract = %d, want %d", got, id)
	}
}

func TestExtractRejectsPureSilence(t *testing.T) {
	w, _ := New(smallConfig())
	audio := make([]float64, 20000)
	if _, found := w.Extract(audio); found {
		t.Fatal("Extract found a watermark in untouched silence")
	}
}

func TestExtractTruncatedAudioNotFound(t *testing.T) {
	w, _ := New(smallConfig())
	host := make([]float64, w.frameLen())
	embedded, err := w.Embed(host, 9)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	// Drop the trailer and most of the payload, leaving less than one
	// full payload window after the preamble.
	truncated := embedded[:PreambleBits*w.cfg.ChipRate+10]
	if _, found := w.Extract(truncated); found {
		t.Fatal("Extract found a watermark in truncated audio")
	}
}

func TestExtractPolaritySymmetry(t *testing.T) {
	w, _ := New(smallConfig())
	host := make([]float64, w.frameLen()+1000)
	const id = 99
	embedded, err := w.Embed(host, id)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	inverted := make([]float64, len(embedded))
	for i, v := range embedded {
		inverted[i] = -v
	}
	got, found := w.Extract(inverted)
	if !found {
		t.Fatal("Extract did not find the polarity-inverted watermark")
	}
	if got != id {
		t.Fatalf("Extract = %d, want %d", got, id)
	}
}

func TestKeySeparation(t *testing.T) {
	cfgA := smallConfig()
	cfgA.Key = "A"
	cfgB := smallConfig()
	cfgB.Key = "B"

	wa, _ := New(cfgA)
	wb, _ := New(cfgB)

	host := make([]float64, wa.frameLen()+1000)
	embedded, err := wa.Embed(host, 55)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if got, found := wb.Extract(embedded); found {
		t.Fatalf("wrong-key extract succeeded, got id %d", got)
	}
	if got, found := wa.Extract(embedded); !found || got != 55 {
		t.Fatalf("matching-key extract = (%d, %v), want (55, true)", got, found)
	}
}

func TestConfigDefaults(t *testing.T) {
	w, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.cfg.ChipRate != DefaultChipRate {
		t.Errorf("ChipRate = %d, want %d", w.cfg.ChipRate, DefaultChipRate)
	}
	if w.cfg.SampleRate != DefaultSampleRate {
		t.Errorf("SampleRate = %d, want %d", w.cfg.SampleRate, DefaultSampleRate)
	}
	if w.seed != DefaultSeed {
		t.Errorf("seed = %d, want %d", w.seed, DefaultSeed)
	}
}

func TestConfigExplicitSeedOverridesKey(t *testing.T) {
	seed := uint32(7)
	w, _ := New(Config{Seed: &seed, Key: "ignored"})
	if w.seed != 7 {
		t.Errorf("seed = %d, want 7", w.seed)
	}
}

// TestExtractRoundTripTelecomMode mirrors S1: a default-seed,
// telecom-mode watermarker embedding into a pure sine host, with no
// channel degradation.
func TestExtractRoundTripTelecomMode(t *testing.T) {
	w, err := New(Config{ChipRate: 512, SampleRate: 44100, TelecomMode: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	host := sineHost(60000, 440, 44100, 0.5)

	const id = 123456789
	embedded, err := w.Embed(host, id)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	got, found := w.Extract(embedded)
	if !found {
		t.Fatal("Extract did not find the telecom-mode watermark")
	}
	if got != id {
		t.Fatalf("Extract = %d, want %d", got, id)
	}
}

// TestExtractRoundTripWithNoise mirrors S2: S1's config and host, with
// additive Gaussian noise over the watermarked audio before Extract.
func TestExtractRoundTripWithNoise(t *testing.T) {
	w, err := New(Config{ChipRate: 512, SampleRate: 44100, TelecomMode: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	host := sineHost(60000, 440, 44100, 0.5)

	const id = 123456789
	embedded, err := w.Embed(host, id)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	noise := gaussianNoise(len(embedded), 0.05, 99)
	noisy := make([]float64, len(embedded))
	for i := range noisy {
		noisy[i] = embedded[i] + noise[i]
	}

	got, found := w.Extract(noisy)
	if !found {
		t.Fatal("Extract did not find the watermark under additive noise")
	}
	if got != id {
		t.Fatalf("Extract = %d, want %d", got, id)
	}
}

// TestExtractRoundTripTelecomChannelWithAGC mirrors S3: a three-tone
// host (100 Hz, 1 kHz, 5 kHz), embedded then passed through the
// same band-pass channel a second time and attenuated by automatic
// gain control, before Extract.
func TestExtractRoundTripTelecomChannelWithAGC(t *testing.T) {
	w, err := New(Config{ChipRate: 512, SampleRate: 44100, TelecomMode: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	n := 150000
	host := make([]float64, n)
	for i := range host {
		tSec := float64(i) / float64(w.cfg.SampleRate)
		host[i] = 0.5*math.Sin(2*math.Pi*100*tSec) +
			0.3*math.Sin(2*math.Pi*5000*tSec) +
			0.3*math.Sin(2*math.Pi*1000*tSec)
	}

	const id = 456789
	embedded, err := w.Embed(host, id)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	channel := shape.BandPass(embedded, w.cfg.SampleRate, w.cfg.BandLowHz, w.cfg.BandHighHz)
	for i := range channel {
		channel[i] *= 0.1
	}

	got, found := w.Extract(channel)
	if !found {
		t.Fatal("Extract did not find the watermark through the telecom channel + AGC")
	}
	if got != id {
		t.Fatalf("Extract = %d, want %d", got, id)
	}
}
