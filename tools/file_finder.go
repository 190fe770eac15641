package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const PcdExtension = ".pcd"

type FileFinder interface {
	GetSampleFolders(pattern string) ([]string, error)
	GetChildFolders(root string) ([]string, error)
	GetSampleFiles(folders []string, fileName string) []string
	GetPcdFilesInFolder(folder string, recursive bool) ([]string, error)
}

// Lists paths in lexicographic order so that slicing the result into shards is reproducible
type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

// Returns the directories matching the glob pattern, sorted
func (f *StandardFileFinder) GetSampleFolders(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad folder pattern %q: %w", pattern, err)
	}

	folders := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			folders = append(folders, match)
		}
	}
	sort.Strings(folders)
	return folders, nil
}

// Returns the direct subdirectories of root, sorted
func (f *StandardFileFinder) GetChildFolders(root string) ([]string, error) {
	return f.GetSampleFolders(filepath.Join(root, "*"))
}

func (f *StandardFileFinder) GetSampleFiles(folders []string, fileName string) []string {
	files := make([]string, len(folders))
	for i, folder := range folders {
		files[i] = filepath.Join(folder, fileName)
	}
	return files
}

// Looks for pcd files in folder, eventually excluding nested folders if recursive is disabled
func (f *StandardFileFinder) GetPcdFilesInFolder(folder string, recursive bool) ([]string, error) {
	var pcdFiles = make([]string, 0)

	baseInfo, err := os.Stat(folder)
	if err != nil {
		return nil, err
	}
	err = filepath.Walk(
		folder,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			}
			if !info.IsDir() && strings.ToLower(filepath.Ext(info.Name())) == PcdExtension {
				pcdFiles = append(pcdFiles, path)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	sort.Strings(pcdFiles)
	return pcdFiles, nil
}
