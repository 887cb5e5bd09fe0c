package in

import (
	"context"

	"vocabuilder/internal/modules/schedule/dto"
	schedulein "vocabuilder/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context, words []string) ([]dto.StatusOutput, error) {
	return h.usecase.Status(ctx, dto.StatusInput{Words: words})
}
