package h5

import (
	"fmt"

	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/ecopia-map/pcd_dataset/internal/dataset"
	"gonum.org/v1/hdf5"
)

// ReadDataset loads a container written by Writer back into memory.
func ReadDataset(path string) (*dataset.Dataset, error) {
	file, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", data.ErrFileIO, path, err)
	}
	defer func() { _ = file.Close() }()

	dims, flat, err := readFloat64(file, DataName)
	if err != nil {
		return nil, err
	}
	if len(dims) != 3 || dims[2] != 3 {
		return nil, fmt.Errorf("%w: %q has shape %v", data.ErrShapeMismatch, DataName, dims)
	}

	labels, err := readInt64(file, LabelName)
	if err != nil {
		return nil, err
	}

	numSamples, numPoints := int(dims[0]), int(dims[1])
	ds := &dataset.Dataset{
		Data:  make([]data.PointCloud, numSamples),
		Label: make([]int, len(labels)),
	}
	stride := numPoints * 3
	for i := range ds.Data {
		cloud, err := data.FromFlat(flat[i*stride : (i+1)*stride])
		if err != nil {
			return nil, err
		}
		ds.Data[i] = cloud
	}
	for i, l := range labels {
		ds.Label[i] = int(l)
	}

	return ds, ds.Validate()
}

func readFloat64(file *hdf5.File, name string) ([]uint, []float64, error) {
	dset, dims, n, err := openArray(file, name)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = dset.Close() }()

	values := make([]float64, n)
	if n > 0 {
		if err := dset.Read(&values); err != nil {
			return nil, nil, fmt.Errorf("reading %q: %w", name, err)
		}
	}
	return dims, values, nil
}

func readInt64(file *hdf5.File, name string) ([]int64, error) {
	dset, _, n, err := openArray(file, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dset.Close() }()

	values := make([]int64, n)
	if n > 0 {
		if err := dset.Read(&values); err != nil {
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}
	}
	return values, nil
}

func openArray(file *hdf5.File, name string) (*hdf5.Dataset, []uint, int, error) {
	dset, err := file.OpenDataset(name)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("opening %q: %w", name, err)
	}

	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	_ = space.Close()
	if err != nil {
		_ = dset.Close()
		return nil, nil, 0, fmt.Errorf("shape of %q: %w", name, err)
	}

	n := 1
	for _, d := range dims {
		n *= int(d)
	}
	return dset, dims, n, nil
}
