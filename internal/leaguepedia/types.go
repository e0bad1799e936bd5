package leaguepedia

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// cargoResponse is the envelope every cargoquery action returns. Rows live
// under cargoquery[].title. API-level errors come back with status 200 and
// an error object instead.
type cargoResponse[T any] struct {
	CargoQuery []struct {
		Title T `json:"title"`
	} `json:"cargoquery"`
	Error *cargoError `json:"error"`
}

type cargoError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// flexInt tolerates the Cargo habit of returning numeric fields as strings,
// empty strings, or nulls depending on the table.
type flexInt struct {
	value int
	valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Tolerated: a garbage value reads as absent, not as a failure.
		return nil
	}
	f.value = v
	f.valid = true
	return nil
}

func (f flexInt) ptr() *int {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

func (f flexInt) or(fallback int) int {
	if !f.valid {
		return fallback
	}
	return f.value
}

type tournamentRow struct {
	Name         string `json:"Name"`
	OverviewPage string `json:"OverviewPage"`
	Year         string `json:"Year"`
}

type scheduleRow struct {
	DateTimeUTC  string  `json:"DateTime_UTC"`
	Team1        string  `json:"Team1"`
	Team2        string  `json:"Team2"`
	Team1Score   flexInt `json:"Team1Score"`
	Team2Score   flexInt `json:"Team2Score"`
	BestOf       flexInt `json:"BestOf"`
	OverviewPage string  `json:"OverviewPage"`
}

type resultRow struct {
	DateTimeUTC string  `json:"DateTime_UTC"`
	Team1       string  `json:"Team1"`
	Team2       string  `json:"Team2"`
	Winner      string  `json:"Winner"`
	Team1Score  flexInt `json:"Team1Score"`
	Team2Score  flexInt `json:"Team2Score"`
	Tournament  string  `json:"Tournament"`
}

type standingRow struct {
	Team       string  `json:"Team"`
	Place      flexInt `json:"Place"`
	WinSeries  flexInt `json:"WinSeries"`
	LossSeries flexInt `json:"LossSeries"`
}

// decodeRows unwraps the cargoquery envelope. An API-level error yields
// zero rows plus the error so callers can degrade to an empty result set.
func decodeRows[T any](body []byte) ([]T, error) {
	var resp cargoResponse[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &APIError{Code: resp.Error.Code, Info: resp.Error.Info}
	}
	rows := make([]T, 0, len(resp.CargoQuery))
	for _, item := range resp.CargoQuery {
		rows = append(rows, item.Title)
	}
	return rows, nil
}

// APIError is a Cargo-level error delivered inside a 200 response.
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return "leaguepedia: " + e.Code + ": " + e.Info
}
