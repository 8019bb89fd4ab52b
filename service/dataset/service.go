package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/thirukguru/aws-netcfg/model"
)

// ErrNotFound is returned by Load when the dataset file does not exist.
var ErrNotFound = errors.New("dataset file not found")

const defaultFileMode os.FileMode = 0o644

// NewService creates a dataset store on the local filesystem.
func NewService() Service {
	return NewServiceWithFs(afero.NewOsFs())
}

// NewServiceWithFs creates a dataset store on the given filesystem (for testing).
func NewServiceWithFs(fs afero.Fs) Service {
	return &service{fs: fs}
}

func (s *service) Exists(path string) (bool, error) {
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to stat dataset file %s: %w", path, err)
	}
	return ok, nil
}

func (s *service) Load(path string) (*model.Dataset, error) {
	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}

	ds := model.NewDataset()
	if err := json.Unmarshal(raw, ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset file %s: %w", path, err)
	}

	if ds.Accounts == nil {
		ds.Accounts = map[string]*model.AccountRecord{}
	}
	for id, account := range ds.Accounts {
		if account == nil {
			ds.Accounts[id] = model.NewAccountRecord()
			continue
		}
		if account.Regions == nil {
			account.Regions = map[string]*model.RegionSnapshot{}
		}
	}

	return ds, nil
}

// Save writes the whole dataset to a temporary file next to path and renames
// it into place, so a crash never leaves a truncated dataset behind.
func (s *service) Save(path string, ds *model.Dataset) error {
	raw, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp dataset file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to sync dataset file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to close dataset file: %w", err)
	}

	if err := s.fs.Chmod(tmpName, s.fileMode(path)); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to set dataset file mode: %w", err)
	}

	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace dataset file %s: %w", path, err)
	}

	return nil
}

// fileMode keeps the permissions of an existing dataset file, else 0644.
func (s *service) fileMode(path string) os.FileMode {
	if info, err := s.fs.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return defaultFileMode
}
