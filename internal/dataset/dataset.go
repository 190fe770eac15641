// Package dataset assembles labeled point clouds into fixed-shape data/label arrays
// and splits class sequences into disjoint shards.
package dataset

import (
	"fmt"

	"github.com/ecopia-map/pcd_dataset/internal/data"
)

// A pair of parallel arrays: Data holds S clouds of N points each, Label holds S class ids.
type Dataset struct {
	Data  []data.PointCloud
	Label []int
}

func (ds *Dataset) Len() int {
	return len(ds.Data)
}

// Returns the point count shared by all samples, 0 for an empty dataset
func (ds *Dataset) NumPoints() int {
	if len(ds.Data) == 0 {
		return 0
	}
	return len(ds.Data[0])
}

// Returns the [numSamples, numPoints, 3] shape of the data array
func (ds *Dataset) Shape() [3]int {
	return [3]int{len(ds.Data), ds.NumPoints(), 3}
}

// Checks the write contract: one label per sample and a single point count across samples.
func (ds *Dataset) Validate() error {
	if len(ds.Data) != len(ds.Label) {
		return fmt.Errorf("%w: %d samples but %d labels", data.ErrShapeMismatch, len(ds.Data), len(ds.Label))
	}

	n := ds.NumPoints()
	for i, cloud := range ds.Data {
		if len(cloud) != n {
			return fmt.Errorf("%w: sample %d has %d points, expected %d", data.ErrMismatchedPointCount, i, len(cloud), n)
		}
	}
	return nil
}

// Row-major copy of the data array, S*N*3 values
func (ds *Dataset) FlatData() []float64 {
	flat := make([]float64, 0, len(ds.Data)*ds.NumPoints()*3)
	for _, cloud := range ds.Data {
		for _, p := range cloud {
			flat = append(flat, p.X, p.Y, p.Z)
		}
	}
	return flat
}

func (ds *Dataset) Labels64() []int64 {
	out := make([]int64, len(ds.Label))
	for i, l := range ds.Label {
		out[i] = int64(l)
	}
	return out
}

// Returns how many samples carry each label
func (ds *Dataset) LabelCounts() map[int]int {
	counts := make(map[int]int)
	for _, l := range ds.Label {
		counts[l]++
	}
	return counts
}
