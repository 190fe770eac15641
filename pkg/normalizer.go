package pkg

import (
	"fmt"
	"path/filepath"

	"github.com/ecopia-map/pcd_dataset/internal/config"
	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/ecopia-map/pcd_dataset/internal/io"
	"github.com/ecopia-map/pcd_dataset/internal/pcd"
	"github.com/ecopia-map/pcd_dataset/pkg/algorithm_manager"
	"github.com/ecopia-map/pcd_dataset/tools"
)

type FolderNormalizer struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewFolderNormalizer(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) *FolderNormalizer {
	return &FolderNormalizer{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// RunNormalizer converts Folder/*/FilenameIn into Folder/*/FilenameOut for every sample folder.
// All clouds are converted before the first file is written. Returns the number of files written.
func (n *FolderNormalizer) RunNormalizer(opts *config.NormalizeOptions) (int, error) {
	folders, err := n.fileFinder.GetChildFolders(opts.Folder)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", data.ErrFileIO, err)
	}
	tools.LogOutput(fmt.Sprintf("Normalizing %d sample folders in %s", len(folders), opts.Folder))

	clouds, err := io.LoadAll(n.fileFinder.GetSampleFiles(folders, opts.FilenameIn), io.LoadOptions{
		Loader:    n.algorithmManager.GetLoaderAlgorithm(),
		Converter: n.algorithmManager.GetConverterAlgorithm(),
		Workers:   opts.Workers,
	})
	if err != nil {
		return 0, err
	}

	for i, cloud := range clouds {
		if err := pcd.SaveFile(filepath.Join(folders[i], opts.FilenameOut), cloud); err != nil {
			return i, err
		}
	}

	tools.LogOutput(fmt.Sprintf("> wrote %d %s files", len(clouds), opts.FilenameOut))
	return len(clouds), nil
}
