/*
 * This file is part of the pcd_dataset distribution (https://github.com/ecopia-map/pcd_dataset).
 * Copyright (c) 2026 ecopia-map
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ecopia-map/pcd_dataset/internal/config"
	"github.com/ecopia-map/pcd_dataset/pkg"
	"github.com/ecopia-map/pcd_dataset/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/pcd_dataset/tools"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

const VERSION = "0.3.0"

const logo = `
                 _         _       _                 _
 _ __   ___ __| |     __| | __ _| |_ __ _ ___  ___| |_
| '_ \ / __/ _' |    / _' |/ _' | __/ _' / __|/ _ \ __|
| |_) | (_| (_| |   | (_| | (_| | || (_| \__ \  __/ |_
| .__/ \___\__,_|____\__,_|\__,_|\__\__,_|___/\___|\__|
|_|   Point cloud to HDF5 dataset builder written in golang
      Copyright YYYY - ecopia-map
`

func main() {
	if err := newRootCommand().Execute(); err != nil {
		glog.Exitf("Error: %v", err)
	}
	glog.Flush()
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pcd_dataset",
		Short:         "Builds labeled HDF5 datasets from PCD point cloud samples",
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// exposes -v, -logtostderr, -log_dir and the other glog flags
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	flagsGlobal := tools.DefineFlagsGlobal(root.PersistentFlags())

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// glog checks that the standard flag set has been parsed
		_ = flag.CommandLine.Parse(nil)

		// set logging and timestamp logging
		if *flagsGlobal.Silent {
			tools.DisableLogger()
		} else {
			printLogo()
		}
		if !*flagsGlobal.LogTimestamp {
			tools.DisableLoggerTimestamp()
		}
		glog.Infoln("flags", tools.FmtJSONString(flagsGlobal))
	}

	root.AddCommand(
		newBuildCommand(&flagsGlobal),
		newCheckCommand(&flagsGlobal),
		newNormalizeCommand(&flagsGlobal),
		newExportCommand(&flagsGlobal),
	)
	return root
}

func newBuildCommand(global *tools.FlagsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   tools.CommandBuild,
		Short: "Loads every class, normalizes the clouds and writes one .h5 container per shard",
		Args:  cobra.NoArgs,
	}
	flags := tools.DefineFlagsForCommandBuild(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := loadDatasetOptions(*flags.Config, global)
		if err != nil {
			return err
		}
		if *flags.Output != "" {
			opts.Output = *flags.Output
		}

		defer timeTrack(time.Now(), tools.CommandBuild)
		written, err := pkg.NewDatasetBuilder(
			tools.NewStandardFileFinder(),
			std_algorithm_manager.NewAlgorithmManager(&opts.Normalization),
		).RunBuilder(opts)
		if err != nil {
			return fmt.Errorf("building dataset: %w", err)
		}

		tools.LogOutput(fmt.Sprintf("Build completed, %d shards written", len(written)))
		return nil
	}
	return cmd
}

func newCheckCommand(global *tools.FlagsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   tools.CommandCheck,
		Short: "Reports sample folders whose cloud does not have the expected point count",
		Args:  cobra.NoArgs,
	}
	flags := tools.DefineFlagsForCommandCheck(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := loadDatasetOptions(*flags.Config, global)
		if err != nil {
			return err
		}

		confirmer := pkg.NewPromptConfirmer(os.Stdin, os.Stdout)
		if *flags.Yes {
			confirmer = pkg.AlwaysConfirm
		}

		report, err := pkg.NewIntegrityRunner(
			tools.NewStandardFileFinder(),
			std_algorithm_manager.NewAlgorithmManager(&opts.Normalization),
		).RunChecker(opts, *flags.Delete, confirmer)
		if err != nil {
			return fmt.Errorf("checking samples: %w", err)
		}

		glog.Infoln("report", tools.FmtJSONString(report))
		tools.LogOutput(fmt.Sprintf("Check completed, %d/%d sample folders nonconforming",
			len(report.Nonconforming), report.Checked))
		return nil
	}
	return cmd
}

func newNormalizeCommand(global *tools.FlagsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   tools.CommandNormalize,
		Short: "Normalizes FOLDER/*/FILENAME_IN into FOLDER/*/FILENAME_OUT",
		Args:  cobra.NoArgs,
	}
	flags := tools.DefineFlagsForCommandNormalize(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts := &config.NormalizeOptions{
			Folder:      *flags.Folder,
			FilenameIn:  *flags.FilenameIn,
			FilenameOut: *flags.FilenameOut,
			Workers:     *global.Workers,
			Normalization: config.NormalizationOptions{
				Enabled:   true,
				TargetMin: *flags.TargetMin,
				TargetMax: *flags.TargetMax,
			},
		}
		if err := config.Validate(opts); err != nil {
			return err
		}
		if _, err := os.Stat(opts.Folder); os.IsNotExist(err) {
			return fmt.Errorf("input folder %s not found", opts.Folder)
		}

		defer timeTrack(time.Now(), tools.CommandNormalize)
		n, err := pkg.NewFolderNormalizer(
			tools.NewStandardFileFinder(),
			std_algorithm_manager.NewAlgorithmManager(&opts.Normalization),
		).RunNormalizer(opts)
		if err != nil {
			return fmt.Errorf("normalizing %s: %w", opts.Folder, err)
		}

		tools.LogOutput(fmt.Sprintf("Normalization completed, %d files written", n))
		return nil
	}
	return cmd
}

func newExportCommand(global *tools.FlagsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   tools.CommandExport,
		Short: "Writes a pcd file, or every pcd file of a folder, as a label 0 .h5 container",
		Args:  cobra.NoArgs,
	}
	flags := tools.DefineFlagsForCommandExport(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts := &config.ExportOptions{
			Input:              *flags.Input,
			Output:             *flags.Output,
			Name:               *flags.Name,
			FolderProcessing:   *flags.FolderProcessing,
			Recursive:          *flags.Recursive,
			ExpectedPointCount: *flags.ExpectedPointCount,
			Workers:            *global.Workers,
			Normalization: config.NormalizationOptions{
				Enabled:   *flags.Normalize,
				TargetMin: *flags.TargetMin,
				TargetMax: *flags.TargetMax,
			},
		}
		if err := config.Validate(opts); err != nil {
			return err
		}

		defer timeTrack(time.Now(), tools.CommandExport)
		path, err := pkg.NewExporter(
			tools.NewStandardFileFinder(),
			std_algorithm_manager.NewAlgorithmManager(&opts.Normalization),
			tools.NewUUIDNames("", nil),
		).RunExporter(opts)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", opts.Input, err)
		}

		tools.LogOutput("Export completed:", path)
		return nil
	}
	return cmd
}

func loadDatasetOptions(path string, global *tools.FlagsGlobal) (*config.DatasetOptions, error) {
	opts, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if *global.Workers > 0 {
		opts.Workers = *global.Workers
	}
	return opts, nil
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}
