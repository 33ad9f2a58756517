package scan

import (
	"encoding/json"
	"fmt"
)

const (
	MicrosPerSecond = 1_000_000
	NanosPerMicro   = 1_000

	nanosPerSecond = 1_000_000_000
)

// Duration is an elapsed time as reported by the measurement binary: whole
// seconds plus a nanosecond remainder.
type Duration struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw struct {
		Secs  int64 `json:"secs"`
		Nanos int64 `json:"nanos"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Secs < 0 || raw.Nanos < 0 {
		return fmt.Errorf("negative duration {secs: %d, nanos: %d}", raw.Secs, raw.Nanos)
	}
	if raw.Nanos >= nanosPerSecond {
		return fmt.Errorf("duration nanos %d not below one second", raw.Nanos)
	}
	d.Secs = uint64(raw.Secs)
	d.Nanos = uint32(raw.Nanos)
	return nil
}

// Micros converts d to microseconds. An absent duration counts as zero; callers
// that care about missing measurements check for nil themselves.
func Micros(d *Duration) float64 {
	if d == nil {
		return 0.0
	}
	return float64(d.Secs)*MicrosPerSecond + float64(d.Nanos)/NanosPerMicro
}
