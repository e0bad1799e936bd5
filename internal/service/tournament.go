package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Volkonik97/esport-arena-tracker/internal/config"
	"github.com/Volkonik97/esport-arena-tracker/internal/constants"
	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	"github.com/Volkonik97/esport-arena-tracker/internal/leaguepedia"
	"github.com/Volkonik97/esport-arena-tracker/internal/repository"
	"github.com/Volkonik97/esport-arena-tracker/internal/resolve"
	"github.com/rs/zerolog"
)

const tournamentsResource = "tournaments"

type TournamentService struct {
	client *leaguepedia.Client
	repo   *repository.TournamentRepository
	cfg    *config.Config
	logger zerolog.Logger
}

func NewTournamentService(client *leaguepedia.Client, repo *repository.TournamentRepository, cfg *config.Config, logger zerolog.Logger) *TournamentService {
	return &TournamentService{client: client, repo: repo, cfg: cfg, logger: logger}
}

// Active returns the active tournament listing for the configured season,
// refreshed from the API when the cached copy is stale. A failed refresh
// falls back to whatever is cached.
func (s *TournamentService) Active(ctx context.Context) ([]domain.Tournament, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	stale, err := s.repo.ShouldRefresh(ctx, tournamentsResource, constants.TournamentRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to check tournament staleness: %w", err)
	}

	if stale {
		apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		tournaments, err := s.client.ActiveTournaments(apiCtx, s.cfg.Season)
		apiCancel()
		if err != nil {
			s.logger.Warn().Err(err).Msg("tournament refresh failed, serving cached listing")
		} else {
			if err := s.repo.UpsertBatch(ctx, tournaments); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache tournaments")
			} else if err := s.repo.MarkRefreshed(ctx, tournamentsResource, time.Now()); err != nil {
				s.logger.Warn().Err(err).Msg("failed to mark tournament refresh")
			}
			s.logger.Info().Int("count", len(tournaments)).Msg("tournaments refreshed")
		}
	}

	return s.repo.GetByYear(ctx, s.cfg.Season)
}

// Resolve maps a human competition name onto the active tournament it most
// plausibly refers to. ok=false is a normal miss, not an error.
func (s *TournamentService) Resolve(ctx context.Context, humanName string) (domain.Tournament, bool, error) {
	tournaments, err := s.Active(ctx)
	if err != nil {
		return domain.Tournament{}, false, err
	}

	candidates := make([]resolve.Candidate, len(tournaments))
	for i, t := range tournaments {
		candidates[i] = resolve.Candidate{Name: t.Name, CanonicalID: t.OverviewPage}
	}

	canonical, ok := resolve.CanonicalID(humanName, candidates)
	if !ok {
		s.logger.Debug().Str("human_name", humanName).Msg("no tournament resolved")
		return domain.Tournament{}, false, nil
	}

	for _, t := range tournaments {
		if t.OverviewPage == canonical {
			return t, true, nil
		}
	}
	return domain.Tournament{}, false, nil
}

// Standings returns the standings of the tournament a human name resolves
// to, or an empty table when nothing resolves.
func (s *TournamentService) Standings(ctx context.Context, humanName string) ([]domain.Standing, error) {
	tournament, ok, err := s.Resolve(ctx, humanName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Standing{}, nil
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	standings, err := s.client.Standings(apiCtx, tournament.OverviewPage)
	if err != nil {
		s.logger.Error().Err(err).Str("overview_page", tournament.OverviewPage).Msg("failed to fetch standings")
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}
	return standings, nil
}
