package pkg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ecopia-map/pcd_dataset/internal/config"
	"github.com/ecopia-map/pcd_dataset/internal/integrity"
	"github.com/ecopia-map/pcd_dataset/pkg/algorithm_manager"
	"github.com/ecopia-map/pcd_dataset/tools"
	"github.com/golang/glog"
)

// Asks the user before anything destructive happens
type Confirmer interface {
	Confirm(question string) (bool, error)
}

type ConfirmFunc func(question string) (bool, error)

func (f ConfirmFunc) Confirm(question string) (bool, error) {
	return f(question)
}

// Confirms everything, used by --yes
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

type CheckReport struct {
	Checked       int      `json:"checked"`
	Nonconforming []string `json:"nonconforming"`
	Deleted       int      `json:"deleted"`
}

type IntegrityRunner struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewIntegrityRunner(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) *IntegrityRunner {
	return &IntegrityRunner{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// RunChecker reports the sample folders of every class whose cloud does not have the expected point count.
// With remove set, the reported folders are deleted only if confirmer agrees.
func (r *IntegrityRunner) RunChecker(opts *config.DatasetOptions, remove bool, confirmer Confirmer) (*CheckReport, error) {
	checker := integrity.NewChecker(r.algorithmManager.GetLoaderAlgorithm(), opts.SampleFile, opts.ExpectedPointCount)

	report := &CheckReport{Nonconforming: make([]string, 0)}
	for _, id := range opts.ClassIds() {
		folders, err := r.fileFinder.GetSampleFolders(opts.SourcePaths[id])
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", id, err)
		}

		nonconforming, err := checker.Check(folders)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", id, err)
		}
		tools.LogOutput(fmt.Sprintf("class %d: %d/%d sample folders do not have %d points",
			id, len(nonconforming), len(folders), opts.ExpectedPointCount))

		report.Checked += len(folders)
		report.Nonconforming = append(report.Nonconforming, nonconforming...)
	}

	for _, folder := range report.Nonconforming {
		tools.LogOutput(">", folder)
	}

	if !remove || len(report.Nonconforming) == 0 {
		return report, nil
	}

	if confirmer == nil {
		return report, fmt.Errorf("deletion of %d folders requested without a confirmation source", len(report.Nonconforming))
	}
	ok, err := confirmer.Confirm(fmt.Sprintf("Delete %d sample folders?", len(report.Nonconforming)))
	if err != nil {
		return report, err
	}
	if !ok {
		tools.LogOutput("Deletion cancelled")
		return report, nil
	}

	deleted, err := tools.RemoveFolders(report.Nonconforming)
	report.Deleted = deleted
	if err != nil {
		return report, fmt.Errorf("deleted %d of %d folders: %w", deleted, len(report.Nonconforming), err)
	}
	glog.Infof("deleted %d nonconforming sample folders", deleted)
	tools.LogOutput(fmt.Sprintf("Deleted %d sample folders", deleted))

	return report, nil
}

// Asks question on out and reads a y/n answer from in. Anything but y or yes declines.
func NewPromptConfirmer(in io.Reader, out io.Writer) Confirmer {
	reader := bufio.NewReader(in)
	return ConfirmFunc(func(question string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", question)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	})
}
