package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// PageIndex is a page number. The binary encodes it either as a bare integer
// or wrapped in a single-element array; both decode to the same value.
type PageIndex uint64

func (p *PageIndex) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("page index is null")
	}

	var n uint64
	if err := json.Unmarshal(b, &n); err == nil {
		*p = PageIndex(n)
		return nil
	}

	var wrapped []uint64
	if err := json.Unmarshal(b, &wrapped); err != nil || len(wrapped) != 1 {
		return fmt.Errorf("page index must be an integer or a single-element integer array, got %s", b)
	}
	*p = PageIndex(wrapped[0])
	return nil
}

// PageRange is the half-open interval [Start, End) of page indices.
type PageRange struct {
	Start PageIndex `json:"start"`
	End   PageIndex `json:"end"`
}

func (r *PageRange) UnmarshalJSON(b []byte) error {
	var raw struct {
		Start *PageIndex `json:"start"`
		End   *PageIndex `json:"end"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Start == nil || raw.End == nil {
		return fmt.Errorf("region %s is missing start or end", b)
	}
	if *raw.End < *raw.Start {
		return fmt.Errorf("region end %d is before start %d", *raw.End, *raw.Start)
	}
	r.Start = *raw.Start
	r.End = *raw.End
	return nil
}

func (r PageRange) Len() uint64 {
	return uint64(r.End - r.Start)
}

// PageSet is an unordered, deduplicated set of page indices.
type PageSet map[uint64]struct{}

// NewPageSet expands every range into its pages. Ranges may overlap and
// appear in any order.
func NewPageSet(ranges []PageRange) PageSet {
	set := make(PageSet)
	for _, r := range ranges {
		for p := uint64(r.Start); p < uint64(r.End); p++ {
			set[p] = struct{}{}
		}
	}
	return set
}

func (s PageSet) Contains(page uint64) bool {
	_, ok := s[page]
	return ok
}

func (s PageSet) Len() int {
	return len(s)
}

// Missing returns the pages of other that are not in s, in ascending order.
func (s PageSet) Missing(other PageSet) []uint64 {
	var missing []uint64
	for p := range other {
		if !s.Contains(p) {
			missing = append(missing, p)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

func (s PageSet) IsSupersetOf(other PageSet) bool {
	for p := range other {
		if !s.Contains(p) {
			return false
		}
	}
	return true
}

// Sorted returns the pages in ascending order.
func (s PageSet) Sorted() []uint64 {
	pages := make([]uint64, 0, len(s))
	for p := range s {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })
	return pages
}
