package tools

import (
	"github.com/spf13/pflag"
)

const (
	CommandBuild     = "build"
	CommandCheck     = "check"
	CommandNormalize = "normalize"
	CommandExport    = "export"
)

type FlagsGlobal struct {
	Silent       *bool `json:"silent"`
	LogTimestamp *bool `json:"timestamp"`
	Workers      *int  `json:"workers"`
}

type RangeFlags struct {
	TargetMin *float64 `json:"target_min"`
	TargetMax *float64 `json:"target_max"`
}

type FlagsForCommandBuild struct {
	Config *string `json:"config"`
	Output *string `json:"output"`
}

type FlagsForCommandCheck struct {
	Config *string `json:"config"`
	Delete *bool   `json:"delete"`
	Yes    *bool   `json:"yes"`
}

type FlagsForCommandNormalize struct {
	RangeFlags
	Folder      *string `json:"folder"`
	FilenameIn  *string `json:"filename_in"`
	FilenameOut *string `json:"filename_out"`
}

type FlagsForCommandExport struct {
	RangeFlags
	Normalize          *bool   `json:"normalize"`
	Input              *string `json:"input"`
	Output             *string `json:"output"`
	Name               *string `json:"name"`
	FolderProcessing   *bool   `json:"folder"`
	Recursive          *bool   `json:"recursive"`
	ExpectedPointCount *int    `json:"expected_point_count"`
}

func DefineFlagsGlobal(flagSet *pflag.FlagSet) FlagsGlobal {
	return FlagsGlobal{
		Silent:       defineBoolFlagCommand(flagSet, "silent", "s", false, "Use to suppress all the non-error messages."),
		LogTimestamp: defineBoolFlagCommand(flagSet, "timestamp", "t", false, "Adds timestamp to log messages."),
		Workers:      defineIntFlagCommand(flagSet, "workers", "w", 0, "Number of concurrent file loaders, 0 uses the number of CPUs. Overrides the config file."),
	}
}

func DefineFlagsForCommandBuild(flagSet *pflag.FlagSet) FlagsForCommandBuild {
	return FlagsForCommandBuild{
		Config: defineStringFlagCommand(flagSet, "config", "c", "", "Specifies the dataset YAML config file."),
		Output: defineStringFlagCommand(flagSet, "output", "o", "", "Specifies the output folder for the shards. Overrides the config file."),
	}
}

func DefineFlagsForCommandCheck(flagSet *pflag.FlagSet) FlagsForCommandCheck {
	return FlagsForCommandCheck{
		Config: defineStringFlagCommand(flagSet, "config", "c", "", "Specifies the dataset YAML config file."),
		Delete: defineBoolFlagCommand(flagSet, "delete", "d", false, "Deletes the nonconforming sample folders after confirmation."),
		Yes:    defineBoolFlagCommand(flagSet, "yes", "y", false, "Confirms the deletion without prompting."),
	}
}

func DefineFlagsForCommandNormalize(flagSet *pflag.FlagSet) FlagsForCommandNormalize {
	return FlagsForCommandNormalize{
		RangeFlags:  defineRangeFlags(flagSet),
		Folder:      defineStringFlagCommand(flagSet, "folder", "f", "", "Specifies the folder holding one subfolder per sample."),
		FilenameIn:  defineStringFlagCommand(flagSet, "filename-in", "i", "", "Name of the pcd file to read inside every sample folder."),
		FilenameOut: defineStringFlagCommand(flagSet, "filename-out", "o", "", "Name of the normalized pcd file to write inside every sample folder."),
	}
}

func DefineFlagsForCommandExport(flagSet *pflag.FlagSet) FlagsForCommandExport {
	return FlagsForCommandExport{
		RangeFlags:         defineRangeFlags(flagSet),
		Normalize:          defineBoolFlagCommand(flagSet, "normalize", "", true, "Normalizes every cloud before export."),
		Input:              defineStringFlagCommand(flagSet, "input", "i", "", "Specifies the input pcd file/folder."),
		Output:             defineStringFlagCommand(flagSet, "output", "o", "", "Specifies the output folder where to write the h5 container."),
		Name:               defineStringFlagCommand(flagSet, "name", "n", "", "Name of the h5 container, a generated one is used when empty."),
		FolderProcessing:   defineBoolFlagCommand(flagSet, "folder", "f", false, "Enables processing of all pcd files from input folder. Input must be a folder if specified"),
		Recursive:          defineBoolFlagCommand(flagSet, "recursive", "r", false, "Enables recursive lookup for all .pcd files inside the subfolders"),
		ExpectedPointCount: defineIntFlagCommand(flagSet, "points", "p", 2048, "Number of points every cloud must have."),
	}
}

func defineRangeFlags(flagSet *pflag.FlagSet) RangeFlags {
	return RangeFlags{
		TargetMin: defineFloat64FlagCommand(flagSet, "target-min", "", -0.36, "Lower bound of the normalized range."),
		TargetMax: defineFloat64FlagCommand(flagSet, "target-max", "", 0.36, "Upper bound of the normalized range."),
	}
}

func defineStringFlagCommand(flagSet *pflag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagSet.StringVarP(&output, name, shortHand, defaultValue, usage)
	return &output
}

func defineIntFlagCommand(flagSet *pflag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagSet.IntVarP(&output, name, shortHand, defaultValue, usage)
	return &output
}

func defineFloat64FlagCommand(flagSet *pflag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagSet.Float64VarP(&output, name, shortHand, defaultValue, usage)
	return &output
}

func defineBoolFlagCommand(flagSet *pflag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagSet.BoolVarP(&output, name, shortHand, defaultValue, usage)
	return &output
}
