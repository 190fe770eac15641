// Package integrity finds sample folders whose point cloud does not have the expected point count.
// It only reports; removing folders is left to the caller.
package integrity

import (
	"fmt"
	"path/filepath"

	"github.com/ecopia-map/pcd_dataset/internal/pcd"
	"github.com/golang/glog"
)

type Checker struct {
	loader             pcd.Loader
	sampleFile         string
	expectedPointCount int
}

func NewChecker(loader pcd.Loader, sampleFile string, expectedPointCount int) *Checker {
	return &Checker{
		loader:             loader,
		sampleFile:         sampleFile,
		expectedPointCount: expectedPointCount,
	}
}

// FindNonconforming loads the sample file of every folder and returns, in input order, the folders
// whose cloud has a point count different from expectedPointCount. A load failure aborts the check.
func FindNonconforming(folders []string, loader pcd.Loader, sampleFile string, expectedPointCount int) ([]string, error) {
	return NewChecker(loader, sampleFile, expectedPointCount).Check(folders)
}

func (c *Checker) Check(folders []string) ([]string, error) {
	nonconforming := make([]string, 0)
	for i, folder := range folders {
		path := filepath.Join(folder, c.sampleFile)
		cloud, err := c.loader.Load(path)
		if err != nil {
			return nil, fmt.Errorf("checking folder %d/%d: %w", i+1, len(folders), err)
		}
		if len(cloud) != c.expectedPointCount {
			glog.V(1).Infof("%s has %d points, expected %d", path, len(cloud), c.expectedPointCount)
			nonconforming = append(nonconforming, folder)
		}
	}
	return nonconforming, nil
}
