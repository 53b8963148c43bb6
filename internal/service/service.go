package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nojaf/christmas-elm/internal/config"
	"github.com/nojaf/christmas-elm/internal/derangement"
	"github.com/nojaf/christmas-elm/internal/domain"
	"github.com/nojaf/christmas-elm/internal/infrastructure/nower"
	"github.com/nojaf/christmas-elm/internal/infrastructure/randomizer"
	"github.com/nojaf/christmas-elm/internal/logging"
	"github.com/nojaf/christmas-elm/internal/metrics"
)

// Service проводит жеребьёвку: принимает список участников и возвращает, кто кому дарит.
type Service struct {
	cfg        config.Config
	randomizer randomizer.Randomizer
	nower      nower.Nower
}

func New(cfg config.Config, randomizer randomizer.Randomizer, nower nower.Nower) *Service {
	if cfg.Derangement.MaxAttempts <= 0 {
		cfg.Derangement.MaxAttempts = derangement.DefaultMaxAttempts
	}
	return &Service{
		cfg:        cfg,
		randomizer: randomizer,
		nower:      nower,
	}
}

// Generate возвращает беспорядок идентификаторов из запроса.
// Пустой список даёт пустой ответ, для одного участника возвращается domain.ErrNoDerangement.
func (s *Service) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResponse, error) {
	ctx = logging.WithLogParticipantsCount(ctx, len(req.IDs))

	if err := ValidateParticipants(req.IDs, s.cfg.Limits.MaxParticipants); err != nil {
		metrics.IncGenerationFailures(metrics.FailureInvalid)
		return domain.GenerationResponse{}, logging.WrapError(ctx, err)
	}

	// Seed из запроса даёт собственный генератор, общий не трогаем
	rnd := s.randomizer
	if req.Seed != nil {
		rnd = randomizer.NewSeeded(*req.Seed)
		ctx = logging.WithLogSeed(ctx, *req.Seed)
	}

	assignment, err := derangement.New(rnd, s.cfg.Derangement.MaxAttempts).Permutation(len(req.IDs))
	if err != nil {
		if errors.Is(err, derangement.ErrImpossible) {
			metrics.IncGenerationFailures(metrics.FailureImpossible)
			return domain.GenerationResponse{}, logging.WrapError(ctx, domain.ErrNoDerangement)
		}
		return domain.GenerationResponse{}, logging.WrapError(ctx, err)
	}

	ctx = logging.WithLogAttempts(ctx, assignment.Attempts, assignment.Fallback)
	if assignment.Fallback {
		slog.WarnContext(ctx, "shuffle attempts exhausted, used single-cycle permutation")
		metrics.IncFallbacks()
	}

	ids := derangement.Apply(req.IDs, assignment.Perm)
	resp := domain.GenerationResponse{
		IDs:         ids,
		Pairs:       makePairs(req.IDs, ids),
		Attempts:    assignment.Attempts,
		GeneratedAt: s.nower.Now(),
	}

	metrics.IncGenerations()
	metrics.ObserveAttempts(assignment.Attempts)
	metrics.AddParticipantsProcessed(len(req.IDs))
	slog.DebugContext(ctx, "derangement generated")

	return resp, nil
}

// makePairs сопоставляет участника на позиции i с получателем receivers[i].
func makePairs(givers, receivers []domain.ParticipantID) []domain.Pair {
	pairs := make([]domain.Pair, len(givers))
	for i := range givers {
		pairs[i] = domain.Pair{Giver: givers[i], Receiver: receivers[i]}
	}
	return pairs
}
