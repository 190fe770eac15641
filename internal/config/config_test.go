package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ecopia-map/pcd_dataset/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetYAML = `
source_paths:
  "0": /data/sample_0/*
  "1": /data/sample_1/*
output: /data/out
workers: 4
shards:
  - name: train
    size: 2048
    take:
      "0": 1648
      "1": 400
  - name: test
    size: 1024
    take:
      "0": 848
      "1": 200
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validOptions() *DatasetOptions {
	return &DatasetOptions{
		SourcePaths:        map[int]string{0: "a/*", 1: "b/*"},
		SampleFile:         DefaultSampleFile,
		ExpectedPointCount: DefaultExpectedPointCount,
		Normalization:      NormalizationOptions{Enabled: true, TargetMin: DefaultTargetMin, TargetMax: DefaultTargetMax},
		Output:             "out",
		Shards: []ShardOptions{
			{Name: "train", Size: 3, Take: map[int]int{0: 2, 1: 1}},
		},
	}
}

func TestLoad(t *testing.T) {
	opts, err := Load(writeConfig(t, datasetYAML))
	require.NoError(t, err)

	assert.Equal(t, map[int]string{0: "/data/sample_0/*", 1: "/data/sample_1/*"}, opts.SourcePaths)
	assert.Equal(t, "/data/out", opts.Output)
	assert.Equal(t, 4, opts.Workers)

	// defaults
	assert.Equal(t, "model_2048.pcd", opts.SampleFile)
	assert.Equal(t, 2048, opts.ExpectedPointCount)
	assert.True(t, opts.Normalization.Enabled)
	assert.InDelta(t, -0.36, opts.Normalization.TargetMin, 1e-12)
	assert.InDelta(t, 0.36, opts.Normalization.TargetMax, 1e-12)
	assert.True(t, opts.CheckIntegrity)

	assert.Equal(t, []ShardOptions{
		{Name: "train", Size: 2048, Take: map[int]int{0: 1648, 1: 400}},
		{Name: "test", Size: 1024, Take: map[int]int{0: 848, 1: 200}},
	}, opts.Shards)
	assert.Equal(t, []int{0, 1}, opts.ClassIds())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PCD_DATASET_OUTPUT", "/elsewhere")
	t.Setenv("PCD_DATASET_CHECK_INTEGRITY", "false")

	opts, err := Load(writeConfig(t, datasetYAML))
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", opts.Output)
	assert.False(t, opts.CheckIntegrity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadClassId(t *testing.T) {
	_, err := Load(writeConfig(t, `
source_paths:
  car: /data/car/*
shards:
  - name: all
    size: 1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_paths")
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, `
source_paths:
  "0": /data/sample_0/*
target_min: 1
target_max: -1
shards:
  - name: all
    size: 1
`))
	require.Error(t, err)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, err.Error(), "TargetMax")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DatasetOptions)
		wantErr string
	}{
		{"valid", func(*DatasetOptions) {}, ""},
		{"no sources", func(o *DatasetOptions) { o.SourcePaths = nil }, "SourcePaths"},
		{"empty glob", func(o *DatasetOptions) { o.SourcePaths[0] = "" }, "SourcePaths"},
		{"negative class", func(o *DatasetOptions) { o.SourcePaths[-1] = "c/*" }, "SourcePaths"},
		{"zero points", func(o *DatasetOptions) { o.ExpectedPointCount = 0 }, "ExpectedPointCount"},
		{"inverted range", func(o *DatasetOptions) { o.Normalization.TargetMax = -1 }, "TargetMax"},
		{"no shards", func(o *DatasetOptions) { o.Shards = nil }, "Shards"},
		{"duplicate shard", func(o *DatasetOptions) { o.Shards = append(o.Shards, o.Shards[0]) }, "unique"},
		{"slash in name", func(o *DatasetOptions) { o.Shards[0].Name = "a/b" }, "Name"},
		{"negative take", func(o *DatasetOptions) { o.Shards[0].Take[0] = -1 }, "Take"},
		{"unknown class", func(o *DatasetOptions) { o.Shards[0].Take = map[int]int{0: 2, 7: 1} }, "unknown class 7"},
		{"take short of size", func(o *DatasetOptions) { o.Shards[0].Size = 5 }, "takes 3 samples, fewer than its size 5"},
		{"take beyond size", func(o *DatasetOptions) { o.Shards[0].Size = 2 }, ""},
		{"collapsed range", func(o *DatasetOptions) { o.Normalization.TargetMin = 0.1; o.Normalization.TargetMax = 0.1000001 }, "narrower than"},
		{"collapsed range unused", func(o *DatasetOptions) {
			o.Normalization = NormalizationOptions{Enabled: false, TargetMin: 0.1, TargetMax: 0.1000001}
		}, ""},
		{"fill shard", func(o *DatasetOptions) { o.Shards[0].Take = nil; o.Shards[0].Size = 10 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(opts)
			err := Validate(opts)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizeOptions(t *testing.T) {
	opts := &NormalizeOptions{
		Folder:        "root",
		FilenameIn:    "model.pcd",
		FilenameOut:   "model.pcd",
		Normalization: NormalizationOptions{Enabled: true, TargetMin: -1, TargetMax: 1},
	}
	err := Validate(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FilenameOut")

	opts.FilenameOut = "normalized.pcd"
	assert.NoError(t, Validate(opts))

	opts.Normalization.TargetMax = -1 + 1e-9
	err = Validate(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "narrower than")
}

func TestShardSpecsAreIndependentCopies(t *testing.T) {
	opts := validOptions()
	specs := opts.ShardSpecs()
	require.Len(t, specs, 1)
	assert.Equal(t, dataset.ShardSpec{Name: "train", Size: 3, Take: map[int]int{0: 2, 1: 1}}, specs[0])

	specs[0].Take[0] = 99
	assert.Equal(t, 2, opts.Shards[0].Take[0])
}

func TestCopy(t *testing.T) {
	opts := validOptions()
	clone := opts.Copy()
	clone.SourcePaths[0] = "changed"
	clone.Shards[0].Take[1] = 42

	assert.Equal(t, "a/*", opts.SourcePaths[0])
	assert.Equal(t, 1, opts.Shards[0].Take[1])
}
