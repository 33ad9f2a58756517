// Package strategy enumerates the dirty page tracking strategies that the
// measurement binary can be asked to run.
package strategy

import "fmt"

// Strategy identifies one dirty page tracker. The zero value is invalid.
type Strategy int

const (
	Uffd Strategy = iota + 1
	SoftDirty
	EmulatedSoftDirty
)

// All returns every strategy in canonical order.
func All() []Strategy {
	return []Strategy{Uffd, SoftDirty, EmulatedSoftDirty}
}

var names = map[Strategy]string{
	Uffd:              "Uffd",
	SoftDirty:         "SoftDirty",
	EmulatedSoftDirty: "EmulatedSoftDirty",
}

var selectors = map[Strategy]string{
	Uffd:              "uffd",
	SoftDirty:         "soft-dirty",
	EmulatedSoftDirty: "emulated-soft-dirty",
}

// Name is the canonical name the binary reports inside its JSON payload.
func (s Strategy) Name() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Selector is the command line argument that selects the strategy when
// invoking the binary.
func (s Strategy) Selector() string {
	return selectors[s]
}

func (s Strategy) String() string {
	return s.Name()
}

func (s Strategy) Valid() bool {
	_, ok := names[s]
	return ok
}

// Parse accepts either the canonical name or the selector.
func Parse(v string) (Strategy, error) {
	for s, n := range names {
		if n == v || selectors[s] == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", v)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid strategy %d", int(s))
	}
	return []byte(s.Name()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
