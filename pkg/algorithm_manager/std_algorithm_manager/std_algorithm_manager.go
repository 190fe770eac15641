package std_algorithm_manager

import (
	"github.com/ecopia-map/pcd_dataset/internal/config"
	"github.com/ecopia-map/pcd_dataset/internal/converters"
	"github.com/ecopia-map/pcd_dataset/internal/converters/range_normalizer"
	"github.com/ecopia-map/pcd_dataset/internal/h5"
	"github.com/ecopia-map/pcd_dataset/internal/pcd"
	"github.com/ecopia-map/pcd_dataset/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	loader    pcd.Loader
	converter converters.CloudConverter
	writer    h5.DatasetWriter
}

// Reads pcd files from disk, writes HDF5 containers and, when enabled, maps every cloud into the target range
func NewAlgorithmManager(opts *config.NormalizationOptions) algorithm_manager.AlgorithmManager {
	converter := converters.Identity
	if opts != nil && opts.Enabled {
		converter = range_normalizer.NewRangeNormalizer(opts.TargetMin, opts.TargetMax)
	}

	return &StandardAlgorithmManager{
		loader:    pcd.NewFileLoader(),
		converter: converter,
		writer:    h5.NewWriter(),
	}
}

func (m *StandardAlgorithmManager) GetLoaderAlgorithm() pcd.Loader {
	return m.loader
}

func (m *StandardAlgorithmManager) GetConverterAlgorithm() converters.CloudConverter {
	return m.converter
}

func (m *StandardAlgorithmManager) GetWriterAlgorithm() h5.DatasetWriter {
	return m.writer
}
