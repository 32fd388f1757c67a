package randtoken

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jigglePattern = regexp.MustCompile(`^[+-] (0\.[0-4][0-9]|0\.50)cm$`)

func TestProvider_ValueRanges(t *testing.T) {
	t.Parallel()

	p, err := NewFromEntropy(nil)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		require.True(t, slices.Contains(DefaultPalette, p.Color()))

		op := p.Opacity()
		require.True(t, strings.HasSuffix(op, "%"), "opacity %q has no percent sign", op)
		n, err := strconv.Atoi(strings.TrimSuffix(op, "%"))
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 10)
		require.LessOrEqual(t, n, 80)

		j := p.Jiggle()
		require.Regexp(t, jigglePattern, j)
	}
}

func TestProvider_SeededIsReproducible(t *testing.T) {
	t.Parallel()

	draw := func() []string {
		p, err := New(StaticSeed, nil)
		require.NoError(t, err)
		var out []string
		for i := 0; i < 50; i++ {
			out = append(out, p.Color(), p.Opacity(), p.Jiggle())
		}
		return out
	}

	assert.Equal(t, draw(), draw())
}

func TestProvider_DifferentSeedsDiverge(t *testing.T) {
	t.Parallel()

	a, err := New(1, nil)
	require.NoError(t, err)
	b, err := New(2, nil)
	require.NoError(t, err)

	var sa, sb []string
	for i := 0; i < 50; i++ {
		sa = append(sa, a.Opacity())
		sb = append(sb, b.Opacity())
	}
	assert.NotEqual(t, sa, sb)
}

func TestProvider_CustomPalette(t *testing.T) {
	t.Parallel()

	palette := []string{"#000000"}
	p, err := New(7, palette)
	require.NoError(t, err)

	palette[0] = "#ffffff"
	for i := 0; i < 10; i++ {
		require.Equal(t, "#000000", p.Color())
	}
	require.Equal(t, []string{"#000000"}, p.Palette())
}

func TestProvider_RejectsEmptyColor(t *testing.T) {
	t.Parallel()

	_, err := New(1, []string{"#000000", ""})
	require.Error(t, err)
}

func TestProvider_JiggleCoversBothSigns(t *testing.T) {
	t.Parallel()

	p, err := New(StaticSeed, nil)
	require.NoError(t, err)

	seen := map[byte]bool{}
	for i := 0; i < 200; i++ {
		seen[p.Jiggle()[0]] = true
	}
	assert.True(t, seen['+'])
	assert.True(t, seen['-'])
}
