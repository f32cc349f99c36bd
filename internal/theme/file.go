package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// FileStorage keeps the choice in a small YAML state file.
type FileStorage struct {
	path string
}

type stateFile struct {
	Theme string `yaml:"theme"`
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load returns "" when the file is missing or unreadable.
func (s *FileStorage) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	var state stateFile
	if err := yaml.Unmarshal(data, &state); err != nil {
		return ""
	}
	return state.Theme
}

func (s *FileStorage) Save(t domain.Theme) error {
	data, err := yaml.Marshal(stateFile{Theme: t.String()})
	if err != nil {
		return fmt.Errorf("failed to encode theme state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write theme state: %w", err)
	}
	return nil
}
