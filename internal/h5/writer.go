// Package h5 stores datasets in HDF5 containers holding two arrays:
// "data", float64 of shape [numSamples, numPoints, 3], and "label", int64 of shape [numSamples].
package h5

import (
	"fmt"
	"os"

	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/ecopia-map/pcd_dataset/internal/dataset"
	"gonum.org/v1/hdf5"
)

const (
	DataName  = "data"
	LabelName = "label"
	Extension = ".h5"
)

type DatasetWriter interface {
	Write(path string, ds *dataset.Dataset) error
}

type Writer struct{}

func NewWriter() DatasetWriter {
	return &Writer{}
}

// Write validates the dataset shape and then creates path, truncating any existing file.
// An invalid dataset never touches the file system; a failed write removes the file.
func (w *Writer) Write(path string, ds *dataset.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: nil dataset", data.ErrShapeMismatch)
	}
	if err := ds.Validate(); err != nil {
		return err
	}

	if err := writeFile(path, ds); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: writing %s: %w", data.ErrFileIO, path, err)
	}
	return nil
}

func writeFile(path string, ds *dataset.Dataset) error {
	file, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}

	shape := ds.Shape()
	dataDims := []uint{uint(shape[0]), uint(shape[1]), uint(shape[2])}
	if err := writeArray(file, DataName, hdf5.T_NATIVE_DOUBLE, dataDims, ds.FlatData()); err != nil {
		_ = file.Close()
		return err
	}

	labelDims := []uint{uint(ds.Len())}
	if err := writeArray(file, LabelName, hdf5.T_NATIVE_INT64, labelDims, ds.Labels64()); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

func writeArray[T float64 | int64](file *hdf5.File, name string, dtype *hdf5.Datatype, dims []uint, values []T) error {
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("dataspace %q: %w", name, err)
	}
	defer func() { _ = space.Close() }()

	dset, err := file.CreateDataset(name, dtype, space)
	if err != nil {
		return fmt.Errorf("dataset %q: %w", name, err)
	}

	// the binding takes the address of the first element, empty arrays are left unwritten
	if len(values) > 0 {
		if err := dset.Write(&values); err != nil {
			_ = dset.Close()
			return fmt.Errorf("dataset %q: %w", name, err)
		}
	}
	return dset.Close()
}
