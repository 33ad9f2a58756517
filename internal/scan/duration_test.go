package scan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicros_AbsentIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Micros(nil))
}

func TestMicros_Conversion(t *testing.T) {
	assert.Equal(t, 1_000_000.0, Micros(&Duration{Secs: 1}))
	assert.Equal(t, 1.5, Micros(&Duration{Nanos: 1500}))
	assert.InDelta(t, 2_000_000.001, Micros(&Duration{Secs: 2, Nanos: 1}), 1e-6)
}

func TestMicros_MonotonicInBothComponents(t *testing.T) {
	prev := -1.0
	for secs := uint64(0); secs < 3; secs++ {
		for _, nanos := range []uint32{0, 1, 999, 1000, 500_000, 999_999_999} {
			got := Micros(&Duration{Secs: secs, Nanos: nanos})
			if got < prev {
				t.Fatalf("Micros not monotonic at secs=%d nanos=%d: %v < %v", secs, nanos, got, prev)
			}
			prev = got
		}
	}
}

func TestDuration_UnmarshalRejectsOutOfRange(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`{"secs":0,"nanos":1000000000}`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{"secs":-1,"nanos":0}`), &d))

	require.NoError(t, json.Unmarshal([]byte(`{"secs":3,"nanos":42}`), &d))
	assert.Equal(t, Duration{Secs: 3, Nanos: 42}, d)
}
