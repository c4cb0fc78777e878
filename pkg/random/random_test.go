package random_test

import (
	"testing"

	"github.com/aretw0/cellfill/pkg/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Deterministic(t *testing.T) {
	a, b := random.New(42), random.New(42)
	for i := 0; i < 64; i++ {
		require.Equal(t, a.Draw(), b.Draw(), "draw %d", i)
	}
}

func TestSource_RoughlyUniform(t *testing.T) {
	src := random.New(7)
	const n = 10000
	trues := 0
	for i := 0; i < n; i++ {
		if src.Draw() {
			trues++
		}
	}
	assert.InDelta(t, n/2, trues, n*0.05)
}

func TestParseScript(t *testing.T) {
	s, err := random.ParseScript("AA d,1 0_t-")
	require.NoError(t, err)
	assert.Equal(t, 7, s.Len())

	var got []bool
	for s.Remaining() > 0 {
		got = append(got, s.Draw())
	}
	assert.Equal(t, []bool{true, true, false, true, false, true, false}, got)
	assert.NoError(t, s.Err())

	assert.False(t, s.Draw())
	assert.ErrorIs(t, s.Err(), random.ErrScriptExhausted)
}

func TestParseScript_Invalid(t *testing.T) {
	_, err := random.ParseScript("AAX")
	assert.Error(t, err)
}

func TestFunc(t *testing.T) {
	var f random.Func = func() bool { return true }
	assert.True(t, f.Draw())
}
