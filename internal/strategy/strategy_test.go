package strategy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameAndSelectorDiffer(t *testing.T) {
	assert.Equal(t, "EmulatedSoftDirty", EmulatedSoftDirty.Name())
	assert.Equal(t, "emulated-soft-dirty", EmulatedSoftDirty.Selector())
	assert.Equal(t, "SoftDirty", SoftDirty.Name())
	assert.Equal(t, "soft-dirty", SoftDirty.Selector())
	assert.Equal(t, "Uffd", Uffd.Name())
	assert.Equal(t, "uffd", Uffd.Selector())
}

func TestParseAcceptsBothForms(t *testing.T) {
	for _, s := range All() {
		got, err := Parse(s.Name())
		require.NoError(t, err)
		assert.Equal(t, s, got)

		got, err = Parse(s.Selector())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := Parse("pagemap")
	assert.Error(t, err)
}

func TestMapKeysUseCanonicalName(t *testing.T) {
	in := map[Strategy]int{Uffd: 1, EmulatedSoftDirty: 2}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Uffd":1,"EmulatedSoftDirty":2}`, string(b))

	var out map[Strategy]int
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestZeroValueIsInvalid(t *testing.T) {
	var s Strategy
	assert.False(t, s.Valid())
	_, err := s.MarshalText()
	assert.Error(t, err)
}
