package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	"github.com/Volkonik97/esport-arena-tracker/internal/reconcile"
	"github.com/rs/zerolog"
)

type stubMatches struct {
	buckets reconcile.Buckets
	err     error
	gotName string
}

func (s *stubMatches) Overview(ctx context.Context) (reconcile.Buckets, error) {
	return s.buckets, s.err
}

func (s *stubMatches) FullSchedule(ctx context.Context) (reconcile.Buckets, error) {
	return s.buckets, s.err
}

func (s *stubMatches) TournamentMatches(ctx context.Context, humanName string) (reconcile.Buckets, error) {
	s.gotName = humanName
	return s.buckets, s.err
}

type stubTournaments struct {
	tournaments []domain.Tournament
	standings   []domain.Standing
	err         error
}

func (s *stubTournaments) Active(ctx context.Context) ([]domain.Tournament, error) {
	return s.tournaments, s.err
}

func (s *stubTournaments) Standings(ctx context.Context, humanName string) ([]domain.Standing, error) {
	return s.standings, s.err
}

func newTestServer(m *stubMatches, tp *stubTournaments) *Server {
	return New(m, tp, zerolog.Nop())
}

func TestHandleMatches(t *testing.T) {
	matches := &stubMatches{buckets: reconcile.Buckets{
		Live: []domain.ViewMatch{{ID: "a-b-2025-04-20-0", Team1: "a", Team2: "b", Status: domain.StatusLive}},
		Upcoming: []domain.ViewMatch{},
		Finished: []domain.ViewMatch{},
	}}
	srv := newTestServer(matches, &stubTournaments{})

	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got reconcile.Buckets
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Live) != 1 || got.Live[0].ID != "a-b-2025-04-20-0" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestHandleMatchesError(t *testing.T) {
	srv := newTestServer(&stubMatches{err: errors.New("boom")}, &stubTournaments{})

	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleTournamentMatchesPassesName(t *testing.T) {
	matches := &stubMatches{buckets: reconcile.Buckets{
		Live: []domain.ViewMatch{}, Upcoming: []domain.ViewMatch{}, Finished: []domain.ViewMatch{},
	}}
	srv := newTestServer(matches, &stubTournaments{})

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments/LEC%20Spring%202025/matches", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if matches.gotName != "LEC Spring 2025" {
		t.Errorf("resolved name = %q", matches.gotName)
	}
}

func TestHandleTournaments(t *testing.T) {
	tp := &stubTournaments{tournaments: []domain.Tournament{
		{Name: "LEC 2025 Spring", OverviewPage: "LEC/2025 Season/Spring Season", Year: "2025"},
	}}
	srv := newTestServer(&stubMatches{}, tp)

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Tournaments []domain.Tournament `json:"tournaments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Tournaments) != 1 || got.Tournaments[0].OverviewPage != "LEC/2025 Season/Spring Season" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestHandleStandings(t *testing.T) {
	tp := &stubTournaments{standings: []domain.Standing{
		{Place: 1, Team: "G2 Esports", WinSeries: 7, LossSeries: 2},
	}}
	srv := newTestServer(&stubMatches{}, tp)

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments/LEC/standings", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Standings []domain.Standing `json:"standings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Standings) != 1 || got.Standings[0].Team != "G2 Esports" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubMatches{}, &stubTournaments{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
