// Package randtoken produces the cosmetic values used by the random
// placeholders of a certificate template: accent colors, opacities and small
// radius offsets ("jiggles").
//
// A Provider owns its own random stream. Two providers built with the same
// seed and palette return the same sequence of values for the same sequence
// of calls, which is what makes --static-colors reproducible.
package randtoken

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// StaticSeed is the seed used when deterministic output is requested without
// an explicit seed.
const StaticSeed uint64 = 1

const (
	minOpacity   = 10
	maxOpacity   = 80
	maxJiggleCm  = 50 // hundredths of a centimetre
	jiggleFactor = 100.0
)

// DefaultPalette is the set of accent colors a template can draw from.
var DefaultPalette = []string{"#b30033", "#007a7d", "#002060"}

// Source is anything that can produce values for the random placeholders.
type Source interface {
	// Color returns an RGB hex code from the palette.
	Color() string
	// Opacity returns a percentage between 10% and 80%.
	Opacity() string
	// Jiggle returns a signed offset such as "+ 0.37cm".
	Jiggle() string
}

// Provider is the math/rand backed Source.
type Provider struct {
	rng     *rand.Rand
	palette []string
}

// New returns a deterministic Provider seeded with seed. A nil or empty
// palette selects DefaultPalette.
func New(seed uint64, palette []string) (*Provider, error) {
	return newProvider(rand.NewPCG(seed, seed), palette)
}

// NewFromEntropy returns a Provider seeded from the runtime's entropy source.
func NewFromEntropy(palette []string) (*Provider, error) {
	return newProvider(rand.NewPCG(rand.Uint64(), rand.Uint64()), palette)
}

func newProvider(src rand.Source, palette []string) (*Provider, error) {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	for _, c := range palette {
		if c == "" {
			return nil, errors.New("palette must not contain empty colors")
		}
	}
	p := make([]string, len(palette))
	copy(p, palette)
	return &Provider{rng: rand.New(src), palette: p}, nil
}

// Palette returns a copy of the colors this provider draws from.
func (p *Provider) Palette() []string {
	out := make([]string, len(p.palette))
	copy(out, p.palette)
	return out
}

func (p *Provider) Color() string {
	return p.palette[p.rng.IntN(len(p.palette))]
}

func (p *Provider) Opacity() string {
	return fmt.Sprintf("%d%%", minOpacity+p.rng.IntN(maxOpacity-minOpacity+1))
}

func (p *Provider) Jiggle() string {
	magnitude := float64(p.rng.IntN(maxJiggleCm+1)) / jiggleFactor
	sign := "+"
	if p.rng.IntN(2) == 1 {
		sign = "-"
	}
	return fmt.Sprintf("%s %.2fcm", sign, magnitude)
}
