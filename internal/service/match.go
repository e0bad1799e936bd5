package service

import (
	"context"
	"time"

	"github.com/Volkonik97/esport-arena-tracker/internal/constants"
	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	"github.com/Volkonik97/esport-arena-tracker/internal/leaguepedia"
	"github.com/Volkonik97/esport-arena-tracker/internal/reconcile"
	"github.com/Volkonik97/esport-arena-tracker/internal/repository"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchService struct {
	client      *leaguepedia.Client
	resultRepo  *repository.ResultRepository
	tournaments *TournamentService
	reconciler  *reconcile.Reconciler
	clock       clockwork.Clock
	logger      zerolog.Logger
}

func NewMatchService(
	client *leaguepedia.Client,
	resultRepo *repository.ResultRepository,
	tournaments *TournamentService,
	reconciler *reconcile.Reconciler,
	clock clockwork.Clock,
	logger zerolog.Logger,
) *MatchService {
	return &MatchService{
		client:      client,
		resultRepo:  resultRepo,
		tournaments: tournaments,
		reconciler:  reconciler,
		clock:       clock,
		logger:      logger,
	}
}

// Overview returns the three display buckets across all tournaments, with
// the upcoming bucket capped to the rolling 24-hour horizon.
func (s *MatchService) Overview(ctx context.Context) (reconcile.Buckets, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	now := s.clock.Now()
	schedule, results := s.fetchFeeds(ctx, "", "", now)
	return s.reconciler.Reconcile(schedule, results, now), nil
}

// FullSchedule is Overview without the upcoming horizon cap.
func (s *MatchService) FullSchedule(ctx context.Context) (reconcile.Buckets, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	now := s.clock.Now()
	schedule, results := s.fetchFeeds(ctx, "", "", now)
	return s.reconciler.ReconcileWindow(schedule, results, now, 0), nil
}

// TournamentMatches resolves a human competition name and returns its
// buckets with no horizon cap. An unresolvable name yields empty buckets.
func (s *MatchService) TournamentMatches(ctx context.Context, humanName string) (reconcile.Buckets, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	now := s.clock.Now()

	tournament, ok, err := s.tournaments.Resolve(ctx, humanName)
	if err != nil {
		return reconcile.Buckets{}, err
	}
	if !ok {
		return s.reconciler.ReconcileWindow(nil, nil, now, 0), nil
	}

	schedule, results := s.fetchFeeds(ctx, tournament.OverviewPage, tournament.Name, now)
	return s.reconciler.ReconcileWindow(schedule, results, now, 0), nil
}

// fetchFeeds pulls the schedule and results feeds concurrently. Either
// feed failing degrades to an empty (or cached) list; reconciliation is a
// best effort over whatever arrived.
func (s *MatchService) fetchFeeds(ctx context.Context, overviewPage, tournamentName string, now time.Time) ([]domain.ScheduleMatch, []domain.ResultMatch) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	var (
		schedule    []domain.ScheduleMatch
		results     []domain.ResultMatch
		scheduleErr error
		resultsErr  error
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		schedule, scheduleErr = s.client.Schedule(apiCtx, overviewPage, now.Add(-constants.ScheduleLookback))
		return nil
	})
	g.Go(func() error {
		results, resultsErr = s.client.Results(apiCtx, leaguepedia.ResultsFilter{
			Tournament: tournamentName,
			From:       now.Add(-constants.ResultsLookback),
			To:         now,
		})
		return nil
	})
	_ = g.Wait()

	if scheduleErr != nil {
		s.logger.Warn().Err(scheduleErr).Msg("schedule feed unavailable")
		schedule = nil
	}

	if resultsErr != nil {
		s.logger.Warn().Err(resultsErr).Msg("results feed unavailable, using cached results")
		cached, err := s.resultRepo.GetSince(ctx, now.Add(-constants.ResultsLookback))
		if err != nil {
			s.logger.Error().Err(err).Msg("cached results unavailable")
		} else {
			results = cached
		}
	} else {
		s.cacheResults(results)
	}

	s.logger.Debug().
		Int("schedule_count", len(schedule)).
		Int("results_count", len(results)).
		Str("overview_page", overviewPage).
		Msg("feeds fetched")

	return schedule, results
}

func (s *MatchService) cacheResults(results []domain.ResultMatch) {
	if len(results) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()
	if err := s.resultRepo.UpsertBatch(ctx, results); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache results")
	}
}
