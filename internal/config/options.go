package config

import (
	"sort"

	"github.com/ecopia-map/pcd_dataset/internal/dataset"
)

const (
	DefaultSampleFile         = "model_2048.pcd"
	DefaultExpectedPointCount = 2048
	DefaultTargetMin          = -0.36
	DefaultTargetMax          = 0.36
	DefaultOutput             = "data"
)

// Range mapping applied to every cloud before it is stored
type NormalizationOptions struct {
	Enabled   bool
	TargetMin float64
	TargetMax float64 `validate:"gtfield=TargetMin"`
}

// Options of the build and check commands
type DatasetOptions struct {
	SourcePaths        map[int]string `validate:"required,min=1,dive,keys,gte=0,endkeys,required"` // class id -> glob of sample folders
	SampleFile         string         `validate:"required"`                                        // point cloud file inside every sample folder
	ExpectedPointCount int            `validate:"gt=0"`
	Normalization      NormalizationOptions
	CheckIntegrity     bool   // refuse to build when a sample has the wrong point count
	Output             string `validate:"required"` // folder receiving one container per shard
	Workers            int    `validate:"gte=0"`
	Shards             []ShardOptions `validate:"required,min=1,unique=Name,dive"`
}

type ShardOptions struct {
	Name string      `validate:"required,excludesall=/"`
	Size int         `validate:"gte=0"`
	Take map[int]int `validate:"omitempty,dive,keys,gte=0,endkeys,gte=0"` // class id -> samples, empty fills from the lowest class
}

type NormalizeOptions struct {
	Folder        string `validate:"required"`
	FilenameIn    string `validate:"required"`
	FilenameOut   string `validate:"required,nefield=FilenameIn"`
	Workers       int    `validate:"gte=0"`
	Normalization NormalizationOptions
}

type ExportOptions struct {
	Input              string `validate:"required"`
	Output             string `validate:"required"`
	Name               string `validate:"omitempty,excludesall=/"`
	FolderProcessing   bool
	Recursive          bool
	ExpectedPointCount int `validate:"gte=0"`
	Workers            int `validate:"gte=0"`
	Normalization      NormalizationOptions
}

// Class ids in ascending order
func (opt *DatasetOptions) ClassIds() []int {
	ids := make([]int, 0, len(opt.SourcePaths))
	for id := range opt.SourcePaths {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (opt *DatasetOptions) ShardSpecs() []dataset.ShardSpec {
	specs := make([]dataset.ShardSpec, len(opt.Shards))
	for i, shard := range opt.Shards {
		specs[i] = dataset.ShardSpec{
			Name: shard.Name,
			Size: shard.Size,
			Take: copyTake(shard.Take),
		}
	}
	return specs
}

func (opt *DatasetOptions) Copy() *DatasetOptions {
	newOpt := *opt

	newOpt.SourcePaths = make(map[int]string, len(opt.SourcePaths))
	for id, path := range opt.SourcePaths {
		newOpt.SourcePaths[id] = path
	}

	newOpt.Shards = make([]ShardOptions, len(opt.Shards))
	for i, shard := range opt.Shards {
		newOpt.Shards[i] = ShardOptions{Name: shard.Name, Size: shard.Size, Take: copyTake(shard.Take)}
	}

	return &newOpt
}

func copyTake(take map[int]int) map[int]int {
	if take == nil {
		return nil
	}
	out := make(map[int]int, len(take))
	for id, n := range take {
		out[id] = n
	}
	return out
}
