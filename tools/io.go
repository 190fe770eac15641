package tools

import (
	"fmt"
	"os"
)

func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}

// Recursively removes every folder. Stops at the first failure and returns how many were removed.
// Callers must obtain an explicit confirmation before calling it.
func RemoveFolders(folders []string) (int, error) {
	for i, folder := range folders {
		info, err := os.Stat(folder)
		if err != nil {
			return i, err
		}
		if !info.IsDir() {
			return i, fmt.Errorf("%s is not a directory", folder)
		}
		if err := os.RemoveAll(folder); err != nil {
			return i, err
		}
	}
	return len(folders), nil
}
