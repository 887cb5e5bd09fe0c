package in

import (
	"context"
	"fmt"
	"os"

	"vocabuilder/internal/modules/library/dto"
	libraryin "vocabuilder/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListWords(ctx context.Context) ([]dto.WordOutput, error) {
	return h.usecase.ListWords(ctx)
}

func (h CLIHandler) Sequence(ctx context.Context) (dto.SequenceOutput, error) {
	return h.usecase.Sequence(ctx)
}

// ExportCSV writes the library to path and returns the number of words written.
func (h CLIHandler) ExportCSV(ctx context.Context, path string) (int, error) {
	words, err := h.usecase.ListWords(ctx)
	if err != nil {
		return 0, err
	}
	text, err := h.usecase.ExportCSV(ctx)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(words), nil
}
