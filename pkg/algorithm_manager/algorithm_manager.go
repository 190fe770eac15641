package algorithm_manager

import (
	"github.com/ecopia-map/pcd_dataset/internal/converters"
	"github.com/ecopia-map/pcd_dataset/internal/h5"
	"github.com/ecopia-map/pcd_dataset/internal/pcd"
)

type AlgorithmManager interface {
	GetLoaderAlgorithm() pcd.Loader
	GetConverterAlgorithm() converters.CloudConverter
	GetWriterAlgorithm() h5.DatasetWriter
}
