// Package leaguepedia is a thin client for the Leaguepedia/Fandom Cargo
// API, the upstream source for tournaments, schedules, results and
// standings.
package leaguepedia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Volkonik97/esport-arena-tracker/internal/config"
	"github.com/Volkonik97/esport-arena-tracker/internal/constants"
	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// cargoTime is the timestamp layout Cargo expects in where clauses.
const cargoTime = "2006-01-02 15:04:05"

type Client struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.LeaguepediaURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

// ActiveTournaments lists tournaments from the given year onwards. The
// listing is what the name resolver matches human competition names
// against.
func (c *Client) ActiveTournaments(ctx context.Context, year string) ([]domain.Tournament, error) {
	params := url.Values{
		"tables": {"Tournaments"},
		"fields": {"Tournaments.Name,Tournaments.OverviewPage,Tournaments.Year"},
		"where":  {fmt.Sprintf(`Tournaments.Year>="%s"`, escape(year))},
	}

	rows, err := doRequest[tournamentRow](ctx, c, params)
	if err != nil {
		return nil, err
	}

	tournaments := make([]domain.Tournament, 0, len(rows))
	for _, row := range rows {
		tournaments = append(tournaments, domain.Tournament{
			Name:         row.Name,
			OverviewPage: row.OverviewPage,
			Year:         row.Year,
		})
	}
	return tournaments, nil
}

// Schedule fetches the schedule feed: fixtures starting after since,
// optionally filtered to one tournament's OverviewPage. Scores in this
// feed are unreliable and only carried through for completeness.
func (c *Client) Schedule(ctx context.Context, overviewPage string, since time.Time) ([]domain.ScheduleMatch, error) {
	where := []string{fmt.Sprintf(`MatchSchedule.DateTime_UTC>"%s"`, since.UTC().Format(cargoTime))}
	if overviewPage != "" {
		where = append(where, fmt.Sprintf(`MatchSchedule.OverviewPage="%s"`, escape(overviewPage)))
	}

	params := url.Values{
		"tables":   {"MatchSchedule"},
		"fields":   {"MatchSchedule.DateTime_UTC,MatchSchedule.Team1,MatchSchedule.Team2,MatchSchedule.Team1Score,MatchSchedule.Team2Score,MatchSchedule.BestOf,MatchSchedule.OverviewPage"},
		"where":    {strings.Join(where, " AND ")},
		"order_by": {"MatchSchedule.DateTime_UTC ASC"},
	}

	rows, err := doRequest[scheduleRow](ctx, c, params)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.ScheduleMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, domain.ScheduleMatch{
			StartTime:  row.DateTimeUTC,
			Team1:      row.Team1,
			Team2:      row.Team2,
			Tournament: row.OverviewPage,
			BestOf:     row.BestOf.ptr(),
			Team1Score: row.Team1Score.ptr(),
			Team2Score: row.Team2Score.ptr(),
		})
	}
	return matches, nil
}

// ResultsFilter narrows the results feed. Zero values mean no constraint.
type ResultsFilter struct {
	Tournament string
	From       time.Time
	To         time.Time
}

// Results fetches the results feed: scoreboard rows joined with their
// tournament, most recent first.
func (c *Client) Results(ctx context.Context, filter ResultsFilter) ([]domain.ResultMatch, error) {
	var where []string
	if !filter.From.IsZero() {
		where = append(where, fmt.Sprintf(`SG.DateTime_UTC>="%s"`, filter.From.UTC().Format(cargoTime)))
	}
	if !filter.To.IsZero() {
		where = append(where, fmt.Sprintf(`SG.DateTime_UTC<"%s"`, filter.To.UTC().Format(cargoTime)))
	}
	if filter.Tournament != "" {
		where = append(where, fmt.Sprintf(`T.Name="%s"`, escape(filter.Tournament)))
	}

	params := url.Values{
		"tables":   {"ScoreboardGames=SG,Tournaments=T"},
		"join_on":  {"SG.Tournament=T.Name"},
		"fields":   {"SG.DateTime_UTC,SG.Team1,SG.Team2,SG.Winner,SG.Team1Score,SG.Team2Score,T.Name=Tournament"},
		"order_by": {"SG.DateTime_UTC DESC"},
	}
	if len(where) > 0 {
		params.Set("where", strings.Join(where, " AND "))
	}

	rows, err := doRequest[resultRow](ctx, c, params)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.ResultMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, domain.ResultMatch{
			StartTime:  row.DateTimeUTC,
			Team1:      row.Team1,
			Team2:      row.Team2,
			Tournament: row.Tournament,
			Winner:     row.Winner,
			Team1Score: row.Team1Score.or(0),
			Team2Score: row.Team2Score.or(0),
		})
	}
	return matches, nil
}

// Standings fetches the standings table of one tournament.
func (c *Client) Standings(ctx context.Context, overviewPage string) ([]domain.Standing, error) {
	params := url.Values{
		"tables":   {"Standings"},
		"fields":   {"Standings.Team,Standings.Place,Standings.WinSeries,Standings.LossSeries"},
		"where":    {fmt.Sprintf(`Standings.OverviewPage="%s"`, escape(overviewPage))},
		"order_by": {"Standings.Place ASC"},
	}

	rows, err := doRequest[standingRow](ctx, c, params)
	if err != nil {
		return nil, err
	}

	standings := make([]domain.Standing, 0, len(rows))
	for _, row := range rows {
		standings = append(standings, domain.Standing{
			Place:      row.Place.or(0),
			Team:       row.Team,
			WinSeries:  row.WinSeries.or(0),
			LossSeries: row.LossSeries.or(0),
		})
	}
	return standings, nil
}

func doRequest[T any](ctx context.Context, client *Client, params url.Values) ([]T, error) {
	params.Set("action", "cargoquery")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("origin", "*")
	if params.Get("limit") == "" {
		params.Set("limit", strconv.Itoa(constants.CargoQueryLimit))
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + "?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	// Fandom rejects Cargo requests without these headers.
	req.Header.Set("User-Agent", "esport-arena-tracker/1.0")
	req.Header.Set("Origin", "https://lol.fandom.com")
	req.Header.Set("Referer", "https://lol.fandom.com")
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	rows, err := decodeRows[T](resp.Body())
	if err != nil {
		client.logger.Warn().Err(err).Msg("cargo query failed")
		return nil, err
	}
	return rows, nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
