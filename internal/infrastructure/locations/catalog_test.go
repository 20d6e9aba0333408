package locations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_India(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	countries := c.Countries()
	require.Len(t, countries, 1)
	assert.Equal(t, "IN", countries[0].Code)

	states := c.States("in")
	assert.Len(t, states, 36)
	assert.Equal(t, "IN", states[0].CountryCode)
	assert.Empty(t, c.States("XX"))
}

func TestNormalizeState(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, in := range []string{"Gujarat", "  gujarat ", "GJ", "gj", "GUJARAT"} {
		got, ok := c.NormalizeState(in)
		assert.True(t, ok, in)
		assert.Equal(t, "Gujarat", got, in)
	}
	got, ok := c.NormalizeState("tamil   nadu")
	assert.True(t, ok)
	assert.Equal(t, "Tamil Nadu", got)

	_, ok = c.NormalizeState("Atlantis")
	assert.False(t, ok)
	_, ok = c.NormalizeState("")
	assert.False(t, ok)
}

func TestParse_YAMLInvalido(t *testing.T) {
	_, err := parse([]byte("countries: ["))
	assert.Error(t, err)
}
