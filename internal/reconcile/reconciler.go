// Package reconcile merges the schedule and results feeds into status-tagged
// view matches. Both feeds cover the same fixtures but share no key, arrive
// independently, and disagree on scores, so every pass is a full, pure
// recomputation over whatever data is currently available.
package reconcile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Volkonik97/esport-arena-tracker/internal/constants"
	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	"github.com/rs/zerolog"
)

type Buckets struct {
	Live     []domain.ViewMatch `json:"live"`
	Upcoming []domain.ViewMatch `json:"upcoming"`
	Finished []domain.ViewMatch `json:"finished"`
}

type Reconciler struct {
	autoLiveLeagues []string
	logger          zerolog.Logger
}

func New(autoLiveLeagues []string, logger zerolog.Logger) *Reconciler {
	return &Reconciler{autoLiveLeagues: autoLiveLeagues, logger: logger}
}

type scheduleFixture struct {
	domain.ScheduleMatch
	start time.Time
}

type resultFixture struct {
	domain.ResultMatch
	start time.Time
}

func (f scheduleFixture) ref() fixtureRef {
	return fixtureRef{team1: f.Team1, team2: f.Team2, tournament: f.Tournament, bestOf: f.BestOf, start: f.start}
}

func (f resultFixture) ref() fixtureRef {
	return fixtureRef{team1: f.Team1, team2: f.Team2, tournament: f.Tournament, bestOf: f.BestOf, start: f.start}
}

// Reconcile produces the overview buckets: live, upcoming within the
// 24-hour horizon, and deduplicated finished results. now is explicit so
// the whole computation is a pure function of its inputs.
func (r *Reconciler) Reconcile(schedule []domain.ScheduleMatch, results []domain.ResultMatch, now time.Time) Buckets {
	return r.ReconcileWindow(schedule, results, now, constants.UpcomingHorizon)
}

// ReconcileWindow is Reconcile with a caller-chosen upcoming horizon.
// horizon <= 0 disables the cap (full schedule view).
func (r *Reconciler) ReconcileWindow(schedule []domain.ScheduleMatch, results []domain.ResultMatch, now time.Time, horizon time.Duration) Buckets {
	sched := r.parseSchedule(schedule)
	res := r.parseResults(results)

	finished := dedupFinished(res)

	live := r.liveFixtures(sched, res, finished, now)
	upcoming := r.upcomingFixtures(sched, live, finished, now, horizon)

	sort.SliceStable(live, func(i, j int) bool { return live[i].start.Before(live[j].start) })
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].start.Before(upcoming[j].start) })
	sort.SliceStable(finished, func(i, j int) bool { return finished[i].start.After(finished[j].start) })

	b := Buckets{
		Live:     make([]domain.ViewMatch, 0, len(live)),
		Upcoming: make([]domain.ViewMatch, 0, len(upcoming)),
		Finished: make([]domain.ViewMatch, 0, len(finished)),
	}
	for i, f := range live {
		b.Live = append(b.Live, r.liveView(f, res, i))
	}
	for i, f := range upcoming {
		b.Upcoming = append(b.Upcoming, upcomingView(f, i))
	}
	for i, f := range finished {
		b.Finished = append(b.Finished, finishedView(f, i))
	}
	return b
}

func (r *Reconciler) parseSchedule(in []domain.ScheduleMatch) []scheduleFixture {
	out := make([]scheduleFixture, 0, len(in))
	for _, m := range in {
		start, err := ParseTimestamp(m.StartTime)
		if err != nil {
			r.logger.Warn().Err(err).
				Str("team1", m.Team1).
				Str("team2", m.Team2).
				Str("tournament", m.Tournament).
				Msg("dropping schedule fixture with bad timestamp")
			continue
		}
		out = append(out, scheduleFixture{ScheduleMatch: m, start: start})
	}
	return out
}

func (r *Reconciler) parseResults(in []domain.ResultMatch) []resultFixture {
	out := make([]resultFixture, 0, len(in))
	for _, m := range in {
		start, err := ParseTimestamp(m.StartTime)
		if err != nil {
			r.logger.Warn().Err(err).
				Str("team1", m.Team1).
				Str("team2", m.Team2).
				Str("tournament", m.Tournament).
				Msg("dropping result fixture with bad timestamp")
			continue
		}
		out = append(out, resultFixture{ResultMatch: m, start: start})
	}
	return out
}

// liveFixtures applies the 120-minute window rule, then unions in the
// auto-live league promotions, excluding anything already decided.
func (r *Reconciler) liveFixtures(sched []scheduleFixture, res []resultFixture, finished []resultFixture, now time.Time) []scheduleFixture {
	var live []scheduleFixture
	for _, f := range sched {
		if decided(finished, f.ref()) {
			continue
		}
		end := f.start.Add(constants.MatchDuration)
		if !now.Before(f.start) && !now.After(end) {
			live = append(live, f)
		}
	}

	for _, promoted := range r.inferredLive(sched, res, live, finished, now) {
		duplicate := false
		for _, l := range live {
			if sameFixture(l.ref(), promoted.ref()) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			live = append(live, promoted)
		}
	}
	return live
}

// inferredLive promotes the next upcoming fixture of an allow-listed league
// when that league just finished a fixture earlier the same day. Those
// leagues routinely start broadcasts before the schedule feed catches up.
func (r *Reconciler) inferredLive(sched []scheduleFixture, res []resultFixture, windowLive []scheduleFixture, finished []resultFixture, now time.Time) []scheduleFixture {
	var promoted []scheduleFixture
	for _, league := range r.autoLiveLeagues {
		alreadyLive := false
		for _, l := range windowLive {
			if r.leagueOf(l.Tournament) == league {
				alreadyLive = true
				break
			}
		}
		if alreadyLive {
			continue
		}

		var upcoming []scheduleFixture
		for _, f := range sched {
			if r.leagueOf(f.Tournament) == league && f.start.After(now) && !decided(finished, f.ref()) {
				upcoming = append(upcoming, f)
			}
		}
		if len(upcoming) == 0 {
			continue
		}
		var done []resultFixture
		for _, f := range res {
			if r.leagueOf(f.Tournament) == league && f.Winner != "" {
				done = append(done, f)
			}
		}
		if len(done) == 0 {
			continue
		}

		sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].start.Before(upcoming[j].start) })
		sort.SliceStable(done, func(i, j int) bool { return done[i].start.Before(done[j].start) })

		next := upcoming[0]
		last := done[len(done)-1]
		if last.start.Before(next.start) && sameDay(last.start, next.start) {
			promoted = append(promoted, next)
		}
	}
	return promoted
}

// leagueOf maps a tournament label onto an allow-list entry by substring,
// case-insensitive. Labels like "LEC/2025 Season/Spring Season" carry the
// league prefix somewhere inside.
func (r *Reconciler) leagueOf(tournament string) string {
	if tournament == "" {
		return ""
	}
	folded := strings.ToLower(tournament)
	for _, league := range r.autoLiveLeagues {
		if strings.Contains(folded, strings.ToLower(league)) {
			return league
		}
	}
	return ""
}

func (r *Reconciler) upcomingFixtures(sched []scheduleFixture, live []scheduleFixture, finished []resultFixture, now time.Time, horizon time.Duration) []scheduleFixture {
	var upcoming []scheduleFixture
	for _, f := range sched {
		if !f.start.After(now) {
			continue
		}
		if horizon > 0 && f.start.After(now.Add(horizon)) {
			continue
		}
		if decided(finished, f.ref()) {
			continue
		}
		isLive := false
		for _, l := range live {
			if sameFixture(l.ref(), f.ref()) {
				isLive = true
				break
			}
		}
		if !isLive {
			upcoming = append(upcoming, f)
		}
	}
	return upcoming
}

// dedupFinished collapses per-game rows of a best-of series into one
// series-level result: records are grouped by fixture identity, keeping
// the winner-bearing record, or failing that the most recent one. Groups
// with no winner at all are not finished and are dropped.
func dedupFinished(res []resultFixture) []resultFixture {
	var groups [][]resultFixture
	for _, f := range res {
		placed := false
		for i, g := range groups {
			if sameFixture(g[0].ref(), f.ref()) {
				groups[i] = append(groups[i], f)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []resultFixture{f})
		}
	}

	var out []resultFixture
	for _, g := range groups {
		best, ok := pickResult(g)
		if ok {
			out = append(out, best)
		}
	}
	return out
}

func pickResult(group []resultFixture) (resultFixture, bool) {
	for _, f := range group {
		if f.Winner != "" {
			return f, true
		}
	}
	latest := group[0]
	for _, f := range group[1:] {
		if f.start.After(latest.start) {
			latest = f
		}
	}
	if latest.Winner == "" {
		return resultFixture{}, false
	}
	return latest, true
}

func decided(finished []resultFixture, ref fixtureRef) bool {
	for _, f := range finished {
		if sameFixture(f.ref(), ref) {
			return true
		}
	}
	return false
}

// liveView builds a live match entry. The schedule feed's own score fields
// are stale, so the score stays 0-0 unless a winner-less results record
// correlates mid-series and supplies a running score.
func (r *Reconciler) liveView(f scheduleFixture, res []resultFixture, ordinal int) domain.ViewMatch {
	v := domain.ViewMatch{
		ID:         viewID(f.Team1, f.Team2, f.start, ordinal),
		Team1:      f.Team1,
		Team2:      f.Team2,
		Tournament: f.Tournament,
		StartTime:  f.StartTime,
		Status:     domain.StatusLive,
	}
	for _, rec := range res {
		if rec.Winner != "" || !sameFixture(rec.ref(), f.ref()) {
			continue
		}
		if foldName(rec.Team1) == foldName(f.Team1) {
			v.Team1Score, v.Team2Score = rec.Team1Score, rec.Team2Score
		} else {
			v.Team1Score, v.Team2Score = rec.Team2Score, rec.Team1Score
		}
		break
	}
	return v
}

func upcomingView(f scheduleFixture, ordinal int) domain.ViewMatch {
	return domain.ViewMatch{
		ID:         viewID(f.Team1, f.Team2, f.start, ordinal),
		Team1:      f.Team1,
		Team2:      f.Team2,
		Tournament: f.Tournament,
		StartTime:  f.StartTime,
		Status:     domain.StatusUpcoming,
	}
}

func finishedView(f resultFixture, ordinal int) domain.ViewMatch {
	return domain.ViewMatch{
		ID:         viewID(f.Team1, f.Team2, f.start, ordinal),
		Team1:      f.Team1,
		Team2:      f.Team2,
		Team1Score: f.Team1Score,
		Team2Score: f.Team2Score,
		Tournament: f.Tournament,
		StartTime:  f.StartTime,
		Status:     domain.StatusFinished,
	}
}

func viewID(team1, team2 string, start time.Time, ordinal int) string {
	return fmt.Sprintf("%s-%s-%s-%d", team1, team2, start.UTC().Format("2006-01-02"), ordinal)
}
