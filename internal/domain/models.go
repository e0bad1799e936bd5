package domain

type MatchStatus string

const (
	StatusUpcoming MatchStatus = "upcoming"
	StatusLive     MatchStatus = "live"
	StatusFinished MatchStatus = "finished"
)

// ScheduleMatch is a fixture from the schedule feed (MatchSchedule table).
// Start times are kept as the raw feed strings; parsing happens during
// reconciliation so a bad timestamp only drops the one fixture.
type ScheduleMatch struct {
	StartTime  string
	Team1      string
	Team2      string
	Tournament string
	BestOf     *int
	Team1Score *int
	Team2Score *int
}

// ResultMatch is a fixture the results feed has recorded as decided.
// Winner may still be empty for per-game rows of an unfinished series.
type ResultMatch struct {
	StartTime  string
	Team1      string
	Team2      string
	Tournament string
	BestOf     *int
	Winner     string
	Team1Score int
	Team2Score int
}

// ViewMatch is the reconciled match entity served to clients. Scores are
// always set; upcoming fixtures are forced to 0-0 no matter what the
// schedule feed carried.
type ViewMatch struct {
	ID         string      `json:"id"`
	Team1      string      `json:"team1"`
	Team2      string      `json:"team2"`
	Team1Score int         `json:"team1_score"`
	Team2Score int         `json:"team2_score"`
	Tournament string      `json:"tournament"`
	StartTime  string      `json:"start_time"`
	Status     MatchStatus `json:"status"`
}

type Tournament struct {
	Name         string `json:"name"`
	OverviewPage string `json:"overview_page"`
	Year         string `json:"year"`
}

type Standing struct {
	Place      int    `json:"place"`
	Team       string `json:"team"`
	WinSeries  int    `json:"win_series"`
	LossSeries int    `json:"loss_series"`
}
