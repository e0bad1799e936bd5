package fx

import (
	"github.com/Volkonik97/esport-arena-tracker/internal/config"
	"github.com/Volkonik97/esport-arena-tracker/internal/database"
	"github.com/Volkonik97/esport-arena-tracker/internal/leaguepedia"
	"github.com/Volkonik97/esport-arena-tracker/internal/logger"
	"github.com/Volkonik97/esport-arena-tracker/internal/reconcile"
	"github.com/Volkonik97/esport-arena-tracker/internal/repository"
	"github.com/Volkonik97/esport-arena-tracker/internal/server"
	"github.com/Volkonik97/esport-arena-tracker/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func ProvideReconciler(cfg *config.Config, log zerolog.Logger) *reconcile.Reconciler {
	return reconcile.New(cfg.AutoLiveLeagues, log)
}

func ProvideServer(matchSvc *service.MatchService, tournamentSvc *service.TournamentService, log zerolog.Logger) *server.Server {
	return server.New(matchSvc, tournamentSvc, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideClock),
	// repos
	fx.Provide(repository.NewTournamentRepository),
	fx.Provide(repository.NewResultRepository),
	// api client
	fx.Provide(leaguepedia.NewClient),
	// core
	fx.Provide(ProvideReconciler),
	// svc
	fx.Provide(service.NewTournamentService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(ProvideServer),
)
