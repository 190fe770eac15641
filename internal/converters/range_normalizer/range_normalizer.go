package range_normalizer

import (
	"fmt"
	"math"

	"github.com/ecopia-map/pcd_dataset/internal/converters"
	"github.com/ecopia-map/pcd_dataset/internal/data"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultTargetMin = -0.36
	DefaultTargetMax = 0.36
)

// Rescales all coordinates of a cloud into [Min, Max]. The cloud is treated as one flat
// collection of 3*N values, so axes are not scaled independently and aspect ratio is kept.
type RangeNormalizer struct {
	Min float64
	Max float64
}

func NewRangeNormalizer(min, max float64) converters.CloudConverter {
	return &RangeNormalizer{
		Min: min,
		Max: max,
	}
}

func NewDefaultRangeNormalizer() converters.CloudConverter {
	return NewRangeNormalizer(DefaultTargetMin, DefaultTargetMax)
}

// Normalize rescales the cloud into the default [-0.36, 0.36] range.
func Normalize(cloud data.PointCloud) (data.PointCloud, error) {
	return (&RangeNormalizer{Min: DefaultTargetMin, Max: DefaultTargetMax}).Convert(cloud)
}

// BatchNormalize normalizes every cloud into the default range, aborting on the first degenerate cloud.
func BatchNormalize(clouds []data.PointCloud) ([]data.PointCloud, error) {
	return converters.ConvertAll(NewDefaultRangeNormalizer(), clouds)
}

func (n *RangeNormalizer) Convert(cloud data.PointCloud) (data.PointCloud, error) {
	if len(cloud) == 0 {
		return nil, fmt.Errorf("%w: cloud has no points", data.ErrDegeneratePointCloud)
	}

	flat := cloud.Flatten()
	if floats.HasNaN(flat) {
		return nil, fmt.Errorf("%w: cloud contains NaN coordinates", data.ErrDegeneratePointCloud)
	}

	globalMin := floats.Min(flat)
	globalMax := floats.Max(flat)
	if math.IsInf(globalMin, 0) || math.IsInf(globalMax, 0) {
		return nil, fmt.Errorf("%w: cloud contains infinite coordinates", data.ErrDegeneratePointCloud)
	}
	if globalMax == globalMin {
		return nil, fmt.Errorf("%w: all %d coordinates equal %v", data.ErrDegeneratePointCloud, len(flat), globalMin)
	}

	// operands are halved when the span overflows float64, halving is exact
	scale := 1.0
	if math.IsInf(globalMax-globalMin, 0) {
		scale = 0.5
	}
	span := globalMax*scale - globalMin*scale
	targetSpan := n.Max - n.Min
	for i, v := range flat {
		switch v {
		case globalMin:
			// boundaries are pinned so the output range is hit exactly
			flat[i] = n.Min
		case globalMax:
			flat[i] = n.Max
		default:
			multiplier := (v*scale - globalMin*scale) / span
			flat[i] = multiplier*targetSpan + n.Min
		}
	}

	return data.FromFlat(flat)
}
