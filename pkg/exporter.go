package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecopia-map/pcd_dataset/internal/config"
	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/ecopia-map/pcd_dataset/internal/dataset"
	"github.com/ecopia-map/pcd_dataset/internal/h5"
	"github.com/ecopia-map/pcd_dataset/internal/io"
	"github.com/ecopia-map/pcd_dataset/pkg/algorithm_manager"
	"github.com/ecopia-map/pcd_dataset/tools"
)

type Exporter struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	names            tools.NameSource
}

// names supplies the container name when the options do not carry one, nil means random UUIDs
func NewExporter(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager, names tools.NameSource) *Exporter {
	if names == nil {
		names = tools.NewUUIDNames("", nil)
	}
	return &Exporter{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		names:            names,
	}
}

// RunExporter stores a single cloud, or every pcd file of a folder, as a label 0 container.
// Returns the path of the written container.
func (e *Exporter) RunExporter(opts *config.ExportOptions) (string, error) {
	files, err := e.inputFiles(opts)
	if err != nil {
		return "", err
	}

	clouds, err := io.LoadAll(files, io.LoadOptions{
		Loader:             e.algorithmManager.GetLoaderAlgorithm(),
		Converter:          e.algorithmManager.GetConverterAlgorithm(),
		ExpectedPointCount: opts.ExpectedPointCount,
		Workers:            opts.Workers,
	})
	if err != nil {
		return "", err
	}

	var ds *dataset.Dataset
	if opts.FolderProcessing {
		ds, err = dataset.AssembleFolder(clouds)
	} else {
		ds, err = dataset.AssembleSingle(clouds[0])
	}
	if err != nil {
		return "", err
	}

	if err := tools.CreateDirectoryIfDoesNotExist(opts.Output); err != nil {
		return "", fmt.Errorf("%w: %w", data.ErrFileIO, err)
	}

	name := opts.Name
	if name == "" {
		name = e.names.Next()
	}
	path := filepath.Join(opts.Output, name+h5.Extension)
	if err := e.algorithmManager.GetWriterAlgorithm().Write(path, ds); err != nil {
		return "", err
	}

	tools.LogOutput(fmt.Sprintf("> wrote %s: data %v", path, ds.Shape()))
	return path, nil
}

func (e *Exporter) inputFiles(opts *config.ExportOptions) ([]string, error) {
	info, err := os.Stat(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w: %s", data.ErrFileIO, data.ErrFileNotFound, opts.Input)
		}
		return nil, fmt.Errorf("%w: %w", data.ErrFileIO, err)
	}

	if !opts.FolderProcessing {
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a folder, use folder processing", data.ErrFileIO, opts.Input)
		}
		return []string{opts.Input}, nil
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a folder", data.ErrFileIO, opts.Input)
	}
	files, err := e.fileFinder.GetPcdFilesInFolder(opts.Input, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", data.ErrFileIO, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no pcd files in %s", data.ErrInsufficientSamples, opts.Input)
	}
	tools.LogOutput(fmt.Sprintf("Exporting %d pcd files from %s", len(files), opts.Input))
	return files, nil
}
