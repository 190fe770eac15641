package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "PCD_DATASET"

type shardFile struct {
	Name string         `mapstructure:"name"`
	Size int            `mapstructure:"size"`
	Take map[string]int `mapstructure:"take"`
}

// Load reads the dataset options from a YAML file. With an empty path dataset.yaml is looked up
// in the working directory and in ./config. Scalar keys can be overridden through
// PCD_DATASET_* environment variables.
func Load(path string) (*DatasetOptions, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dataset")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	opts, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sample_file", DefaultSampleFile)
	v.SetDefault("expected_point_count", DefaultExpectedPointCount)
	v.SetDefault("normalize", true)
	v.SetDefault("target_min", DefaultTargetMin)
	v.SetDefault("target_max", DefaultTargetMax)
	v.SetDefault("check_integrity", true)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("workers", 0)
}

func fromViper(v *viper.Viper) (*DatasetOptions, error) {
	var opts DatasetOptions

	sourcePaths, err := classKeys(v.GetStringMapString("source_paths"))
	if err != nil {
		return nil, fmt.Errorf("source_paths: %w", err)
	}
	opts.SourcePaths = sourcePaths

	opts.SampleFile = v.GetString("sample_file")
	opts.ExpectedPointCount = v.GetInt("expected_point_count")
	opts.Normalization = NormalizationOptions{
		Enabled:   v.GetBool("normalize"),
		TargetMin: v.GetFloat64("target_min"),
		TargetMax: v.GetFloat64("target_max"),
	}
	opts.CheckIntegrity = v.GetBool("check_integrity")
	opts.Output = v.GetString("output")
	opts.Workers = v.GetInt("workers")

	var shards []shardFile
	if err := v.UnmarshalKey("shards", &shards); err != nil {
		return nil, fmt.Errorf("shards: %w", err)
	}
	for _, shard := range shards {
		take, err := classKeys(shard.Take)
		if err != nil {
			return nil, fmt.Errorf("shard %q take: %w", shard.Name, err)
		}
		opts.Shards = append(opts.Shards, ShardOptions{Name: shard.Name, Size: shard.Size, Take: take})
	}

	return &opts, nil
}

// YAML mapping keys reach us as strings, class ids are integers
func classKeys[T any](in map[string]T) (map[int]T, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[int]T, len(in))
	for key, value := range in {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("class id %q is not an integer", key)
		}
		out[id] = value
	}
	return out, nil
}
