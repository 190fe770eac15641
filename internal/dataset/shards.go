package dataset

import (
	"fmt"
	"sort"

	"github.com/ecopia-map/pcd_dataset/internal/data"
)

// Describes one output shard: how many samples it holds and, per class, how many
// consecutive samples it consumes from that class sequence.
type ShardSpec struct {
	Name string
	Size int
	Take map[int]int
}

type Shard struct {
	Name    string
	Dataset *Dataset
	Ranges  map[int]Range
}

// PlanShards assembles the shards in order. Each shard takes the next Take[class] unclaimed
// samples of every class, so shard ranges are disjoint by construction. A ShardSpec with an empty
// Take fills Size samples from the lowest class ids with samples left.
// Every shard is assembled before any is returned, a failure leaves no partial plan.
func PlanShards(classes map[int][]data.PointCloud, specs []ShardSpec) ([]Shard, error) {
	sizes := make(map[int]int, len(classes))
	for id, clouds := range classes {
		sizes[id] = len(clouds)
	}
	ledger := NewLedger(sizes)

	seen := make(map[string]bool, len(specs))
	shards := make([]Shard, 0, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate shard name %q", spec.Name)
		}
		seen[spec.Name] = true

		take := spec.Take
		if len(take) == 0 {
			take = fillTake(ledger, classes, spec.Size)
		}

		ranges := make(map[int]Range, len(take))
		sub := make(map[int][]data.PointCloud, len(take))
		for _, id := range sortedTakeIds(take) {
			n := take[id]
			if n < 0 {
				return nil, fmt.Errorf("shard %q: negative take %d for class %d", spec.Name, n, id)
			}
			start := ledger.Cursor(id)
			if err := ledger.Claim(id, start, start+n); err != nil {
				return nil, fmt.Errorf("shard %q: %w", spec.Name, err)
			}
			ranges[id] = Range{Start: start, End: start + n}
			sub[id] = classes[id][start : start+n]
		}

		ds, err := AssembleClasses(sub, spec.Size)
		if err != nil {
			return nil, fmt.Errorf("shard %q: %w", spec.Name, err)
		}
		shards = append(shards, Shard{Name: spec.Name, Dataset: ds, Ranges: ranges})
	}

	return shards, nil
}

func fillTake(ledger *Ledger, classes map[int][]data.PointCloud, size int) map[int]int {
	take := make(map[int]int)
	left := size
	for _, id := range sortedClassIds(classes) {
		if left == 0 {
			break
		}
		n := ledger.Remaining(id)
		if n > left {
			n = left
		}
		if n > 0 {
			take[id] = n
			left -= n
		}
	}
	return take
}

func sortedTakeIds(take map[int]int) []int {
	ids := make([]int, 0, len(take))
	for id := range take {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
