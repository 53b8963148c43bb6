package generation

import (
	"context"

	"github.com/nojaf/christmas-elm/internal/domain"
)

type UseCase interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResponse, error)
}
