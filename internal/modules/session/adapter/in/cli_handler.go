package in

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	librarydto "vocabuilder/internal/modules/library/dto"
	sessiondto "vocabuilder/internal/modules/session/dto"
	sessionin "vocabuilder/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// IngestFile reads path and ingests it under its base name.
func (h CLIHandler) IngestFile(ctx context.Context, path string, enrich []string, autoLoad bool) (sessiondto.IngestOutput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return sessiondto.IngestOutput{}, fmt.Errorf("read %s: %w", path, err)
	}
	return h.usecase.Ingest(ctx, sessiondto.IngestInput{Name: filepath.Base(path), Content: content, Enrich: enrich, AutoLoad: autoLoad})
}

func (h CLIHandler) Load(ctx context.Context, week, day int) (sessiondto.ActiveSetOutput, error) {
	return h.usecase.LoadWeekDay(ctx, sessiondto.LoadInput{Week: week, Day: day})
}

func (h CLIHandler) Active(ctx context.Context) (sessiondto.ActiveSetOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) Due(ctx context.Context) ([]librarydto.WordOutput, error) {
	return h.usecase.DueWordsInCurrentSet(ctx)
}

func (h CLIHandler) Overview(ctx context.Context) (sessiondto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	return h.usecase.ExportSheet(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (sessiondto.ResetOutput, error) {
	return h.usecase.ResetAllData(ctx)
}
