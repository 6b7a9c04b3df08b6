package container

import (
	"fmt"
	"os"
	"path/filepath"

	"palpack/quant"
)

// WriteFile persists the pair at path, writing through a temporary file
// in the destination directory and renaming once the data is flushed.
func WriteFile(path string, res *quant.Result) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base)
	if err != nil {
		return fmt.Errorf("could not create temporary archive for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := tmp.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush archive %q: %w", path, defErr)
		}
		if defErr := tmp.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close archive %q: %w", path, defErr)
		}
		if err != nil || !canRename {
			os.Remove(tmp.Name())
			return
		}
		if defErr := os.Rename(tmp.Name(), path); defErr != nil {
			err = fmt.Errorf("could not rename archive to %q: %w", path, defErr)
		}
	}()

	if err = Write(tmp, res); err != nil {
		return fmt.Errorf("could not write archive %q: %w", path, err)
	}

	canRename = true
	return nil
}

// ReadFile loads a pair from an archive at path.
func ReadFile(path string) (*quant.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open archive %q: %w", path, err)
	}
	defer f.Close()

	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not load archive %q: %w", path, err)
	}
	return res, nil
}
