package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecopia-map/pcd_dataset/internal/config"
	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/ecopia-map/pcd_dataset/internal/dataset"
	"github.com/ecopia-map/pcd_dataset/internal/h5"
	"github.com/ecopia-map/pcd_dataset/internal/integrity"
	"github.com/ecopia-map/pcd_dataset/internal/io"
	"github.com/ecopia-map/pcd_dataset/pkg/algorithm_manager"
	"github.com/ecopia-map/pcd_dataset/tools"
	"github.com/golang/glog"
)

type DatasetBuilder struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewDatasetBuilder(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) *DatasetBuilder {
	return &DatasetBuilder{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// RunBuilder loads every class, plans the shards and writes one container per shard into opts.Output.
// Returns the written paths in shard order. Nothing is written unless every shard could be planned,
// and a failed write removes the shards written before it.
func (b *DatasetBuilder) RunBuilder(opts *config.DatasetOptions) ([]string, error) {
	tools.LogOutput("Preparing list of samples to process...")

	folders, err := b.collectFolders(opts)
	if err != nil {
		return nil, err
	}

	if opts.CheckIntegrity {
		if err := b.checkIntegrity(opts, folders); err != nil {
			return nil, err
		}
	}

	classes := make(map[int][]data.PointCloud, len(folders))
	for _, id := range opts.ClassIds() {
		files := b.fileFinder.GetSampleFiles(folders[id], opts.SampleFile)
		clouds, err := io.LoadAll(files, io.LoadOptions{
			Loader:             b.algorithmManager.GetLoaderAlgorithm(),
			Converter:          b.algorithmManager.GetConverterAlgorithm(),
			ExpectedPointCount: opts.ExpectedPointCount,
			Workers:            opts.Workers,
			Label:              fmt.Sprintf("class %d", id),
		})
		if err != nil {
			return nil, fmt.Errorf("loading class %d: %w", id, err)
		}
		classes[id] = clouds
	}

	tools.LogOutput("> planning shards...")
	shards, err := dataset.PlanShards(classes, opts.ShardSpecs())
	if err != nil {
		return nil, err
	}

	if err := tools.CreateDirectoryIfDoesNotExist(opts.Output); err != nil {
		return nil, fmt.Errorf("%w: %w", data.ErrFileIO, err)
	}

	writer := b.algorithmManager.GetWriterAlgorithm()
	written := make([]string, 0, len(shards))
	for _, shard := range shards {
		path := filepath.Join(opts.Output, shard.Name+h5.Extension)
		if err := writer.Write(path, shard.Dataset); err != nil {
			removeShards(written)
			return nil, fmt.Errorf("shard %q: %w", shard.Name, err)
		}
		written = append(written, path)

		shape := shard.Dataset.Shape()
		tools.LogOutput(fmt.Sprintf("> wrote %s: data %v, labels %v", path, shape, shard.Dataset.LabelCounts()))
		for id, r := range shard.Ranges {
			glog.V(1).Infof("shard %s class %d samples [%d, %d)", shard.Name, id, r.Start, r.End)
		}
	}

	return written, nil
}

func removeShards(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			glog.Errorf("removing shard %s: %v", path, err)
		}
	}
}

// Lists the sample folders of every class, sorted
func (b *DatasetBuilder) collectFolders(opts *config.DatasetOptions) (map[int][]string, error) {
	folders := make(map[int][]string, len(opts.SourcePaths))
	for _, id := range opts.ClassIds() {
		classFolders, err := b.fileFinder.GetSampleFolders(opts.SourcePaths[id])
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", id, err)
		}
		tools.LogOutput(fmt.Sprintf("class %d: %d sample folders", id, len(classFolders)))
		folders[id] = classFolders
	}
	return folders, nil
}

func (b *DatasetBuilder) checkIntegrity(opts *config.DatasetOptions, folders map[int][]string) error {
	tools.LogOutput("> checking sample integrity...")
	checker := integrity.NewChecker(b.algorithmManager.GetLoaderAlgorithm(), opts.SampleFile, opts.ExpectedPointCount)

	bad := 0
	for _, id := range opts.ClassIds() {
		nonconforming, err := checker.Check(folders[id])
		if err != nil {
			return fmt.Errorf("class %d: %w", id, err)
		}
		for _, folder := range nonconforming {
			glog.Warningf("nonconforming sample folder %s", folder)
		}
		bad += len(nonconforming)
	}

	if bad > 0 {
		return fmt.Errorf("%w: %d sample folders do not have %d points, run the check command for details",
			data.ErrMismatchedPointCount, bad, opts.ExpectedPointCount)
	}
	return nil
}
