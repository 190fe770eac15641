package dataset

import (
	"fmt"
	"sort"

	"github.com/ecopia-map/pcd_dataset/internal/data"
)

// Label assigned when a single class is exported on its own
const DefaultLabel = 0

// Assemble places targetSize samples taken first from zero (label 0) and then from one (label 1).
func Assemble(zero, one []data.PointCloud, targetSize int) (*Dataset, error) {
	classes := map[int][]data.PointCloud{0: zero}
	if len(one) > 0 {
		classes[1] = one
	}
	return AssembleClasses(classes, targetSize)
}

// AssembleClasses concatenates the class sequences in ascending class id order and keeps the first
// targetSize samples. Output index i belongs to the class whose cumulative range contains i.
func AssembleClasses(classes map[int][]data.PointCloud, targetSize int) (*Dataset, error) {
	if targetSize < 0 {
		return nil, fmt.Errorf("target size %d must not be negative", targetSize)
	}

	ids := sortedClassIds(classes)
	available := 0
	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("class id %d must not be negative", id)
		}
		available += len(classes[id])
	}
	if targetSize > available {
		return nil, fmt.Errorf("%w: requested %d samples, %d available", data.ErrInsufficientSamples, targetSize, available)
	}

	ds := &Dataset{
		Data:  make([]data.PointCloud, 0, targetSize),
		Label: make([]int, 0, targetSize),
	}

	numPoints := -1
	for _, id := range ids {
		for _, cloud := range classes[id] {
			if ds.Len() == targetSize {
				return ds, nil
			}
			if numPoints < 0 {
				numPoints = len(cloud)
			} else if len(cloud) != numPoints {
				return nil, fmt.Errorf("%w: class %d sample has %d points, expected %d",
					data.ErrMismatchedPointCount, id, len(cloud), numPoints)
			}
			ds.Data = append(ds.Data, cloud)
			ds.Label = append(ds.Label, id)
		}
	}

	return ds, nil
}

// AssembleSingle wraps one cloud as a dataset of shape (1, N, 3) with the default label.
func AssembleSingle(cloud data.PointCloud) (*Dataset, error) {
	return AssembleClasses(map[int][]data.PointCloud{DefaultLabel: {cloud}}, 1)
}

// AssembleFolder places every cloud of a single class with the default label.
func AssembleFolder(clouds []data.PointCloud) (*Dataset, error) {
	return AssembleClasses(map[int][]data.PointCloud{DefaultLabel: clouds}, len(clouds))
}

func sortedClassIds(classes map[int][]data.PointCloud) []int {
	ids := make([]int, 0, len(classes))
	for id := range classes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
