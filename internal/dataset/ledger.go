package dataset

import (
	"fmt"
	"sort"

	"github.com/ecopia-map/pcd_dataset/internal/data"
)

// Half-open index range [Start, End) into one class sequence
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Ledger records which indices of each class sequence were handed to a shard, so that no
// index is consumed twice and no range runs past the end of its sequence.
type Ledger struct {
	sizes   map[int]int
	claimed map[int][]Range
}

func NewLedger(sizes map[int]int) *Ledger {
	s := make(map[int]int, len(sizes))
	for id, n := range sizes {
		s[id] = n
	}
	return &Ledger{
		sizes:   s,
		claimed: make(map[int][]Range),
	}
}

// Claim reserves [start, end) of the given class.
func (l *Ledger) Claim(class, start, end int) error {
	if start < 0 || end < start {
		return fmt.Errorf("invalid range [%d, %d) for class %d", start, end, class)
	}
	if end > l.sizes[class] {
		return fmt.Errorf("%w: class %d range [%d, %d) exceeds %d available samples",
			data.ErrInsufficientSamples, class, start, end, l.sizes[class])
	}
	if start == end {
		return nil
	}

	r := Range{Start: start, End: end}
	for _, c := range l.claimed[class] {
		if c.overlaps(r) {
			return fmt.Errorf("%w: class %d range [%d, %d) overlaps [%d, %d)",
				data.ErrOverlappingRange, class, start, end, c.Start, c.End)
		}
	}
	l.claimed[class] = append(l.claimed[class], r)
	sort.Slice(l.claimed[class], func(i, j int) bool {
		return l.claimed[class][i].Start < l.claimed[class][j].Start
	})
	return nil
}

// Cursor is the first index after every claimed range of the class.
func (l *Ledger) Cursor(class int) int {
	cursor := 0
	for _, c := range l.claimed[class] {
		if c.End > cursor {
			cursor = c.End
		}
	}
	return cursor
}

// Remaining counts the indices past the cursor that are still free.
func (l *Ledger) Remaining(class int) int {
	return l.sizes[class] - l.Cursor(class)
}

func (l *Ledger) Claimed(class int) []Range {
	out := make([]Range, len(l.claimed[class]))
	copy(out, l.claimed[class])
	return out
}

// Total number of indices consumed from the class
func (l *Ledger) Consumed(class int) int {
	total := 0
	for _, c := range l.claimed[class] {
		total += c.Len()
	}
	return total
}
