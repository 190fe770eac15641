package converters

import (
	"strconv"

	"github.com/ecopia-map/pcd_dataset/internal/data"
)

// Transforms a point cloud into a new one. Implementations must not mutate the input cloud.
type CloudConverter interface {
	Convert(cloud data.PointCloud) (data.PointCloud, error)
}

type identity struct{}

// Identity returns clouds unchanged (as copies). Used when normalization is disabled.
var Identity CloudConverter = identity{}

func (identity) Convert(cloud data.PointCloud) (data.PointCloud, error) {
	return cloud.Clone(), nil
}

// Applies the converter to every cloud preserving order and count. The first failure aborts the batch.
func ConvertAll(converter CloudConverter, clouds []data.PointCloud) ([]data.PointCloud, error) {
	out := make([]data.PointCloud, len(clouds))
	for i, cloud := range clouds {
		converted, err := converter.Convert(cloud)
		if err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
		out[i] = converted
	}
	return out, nil
}

// Reports which cloud of a batch failed
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return "cloud " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
