package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSource reads <dir>/<dataset>.json.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Name() string { return "file" }

// Dir returns the directory datasets are read from.
func (s *FileSource) Dir() string { return s.dir }

func (s *FileSource) Fetch(ctx context.Context, dataset string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !knownDataset(dataset) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, dataset)
	}

	path := filepath.Join(s.dir, dataset+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
