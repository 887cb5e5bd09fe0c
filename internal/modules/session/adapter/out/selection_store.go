package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vocabuilder/internal/modules/session/domain"
	sessionout "vocabuilder/internal/modules/session/port/out"
	apperrors "vocabuilder/internal/platform/errors"
)

type FileSelectionStore struct {
	path string
}

func NewFileSelectionStore(path string) sessionout.SelectionStore {
	return &FileSelectionStore{path: path}
}

func (s *FileSelectionStore) Save(_ context.Context, selection domain.ActiveSelection) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create selection dir: %w", err)
	}
	payload, err := json.MarshalIndent(selection, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace selection: %w", err)
	}
	return nil
}

// Load treats a missing, unreadable or empty selection file as no selection.
func (s *FileSelectionStore) Load(_ context.Context) (domain.ActiveSelection, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveSelection{}, apperrors.ErrNoActiveSet
		}
		return domain.ActiveSelection{}, fmt.Errorf("read selection: %w", err)
	}
	selection := domain.ActiveSelection{}
	if err := json.Unmarshal(payload, &selection); err != nil {
		return domain.ActiveSelection{}, fmt.Errorf("%w: selection file is unreadable", apperrors.ErrNoActiveSet)
	}
	if selection.Week < 1 || selection.Day < 1 {
		return domain.ActiveSelection{}, apperrors.ErrNoActiveSet
	}
	return selection, nil
}

func (s *FileSelectionStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear selection: %w", err)
	}
	return nil
}
